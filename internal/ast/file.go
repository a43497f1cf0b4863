package ast

import "ashlang/internal/source"

// File is the parsed form of one source unit.
type File struct {
	ID    source.FileID
	Path  string
	Funcs []*Func
	Span  source.Span
}

// Func returns the definition named name, or nil.
func (f *File) Func(name string) *Func {
	for _, fn := range f.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
