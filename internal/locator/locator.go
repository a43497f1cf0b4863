// Package locator maps function names to the source units that define them.
//
// Include roots are scanned once, in registration order, when they are
// registered. A name defined under two different roots resolves to the root
// registered first; two definitions inside one root are rejected.
package locator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"ashlang/internal/parser"
	"ashlang/internal/source"
)

// Ext is the file extension of ashlang sources.
const Ext = ".ash"

// Unit is one loaded source file together with the names it declares.
type Unit struct {
	File  source.FileID
	Path  string
	Root  string
	Decls []parser.Decl
}

// Names returns the function names declared by the unit in source order.
func (u *Unit) Names() []string {
	out := make([]string, len(u.Decls))
	for i, d := range u.Decls {
		out[i] = d.Name
	}
	return out
}

type entry struct {
	unit *Unit
	decl parser.Decl
}

type Locator struct {
	files *source.FileSet
	roots []string
	units []*Unit
	index map[string]entry
}

// New returns an empty Locator loading files into fileSet.
func New(fileSet *source.FileSet) *Locator {
	if fileSet == nil {
		fileSet = source.NewFileSet()
	}
	return &Locator{files: fileSet, index: make(map[string]entry)}
}

// FileSet returns the set the locator loads sources into.
func (l *Locator) FileSet() *source.FileSet { return l.files }

// Register scans root for .ash files and indexes their top-level functions.
// Empty roots are ignored, a root registered twice is scanned once.
// On error nothing from root is indexed.
func (l *Locator) Register(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("include root %q: %w", root, err)
	}
	abs = filepath.Clean(abs)
	if slices.Contains(l.roots, abs) {
		return nil
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("include root %q: %w", root, err)
	}

	var paths []string
	if info.IsDir() {
		// WalkDir visits entries in lexical order
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != abs && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == Ext {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("include root %q: %w", root, err)
		}
	} else {
		if filepath.Ext(abs) != Ext {
			return fmt.Errorf("include root %q: not a directory or %s file", root, Ext)
		}
		paths = []string{abs}
	}

	local := make(map[string]entry)
	units := make([]*Unit, 0, len(paths))
	for _, path := range paths {
		id, err := l.files.Load(path)
		if err != nil {
			return fmt.Errorf("include root %q: %w", root, err)
		}
		u := &Unit{
			File:  id,
			Path:  l.files.Get(id).Path,
			Root:  abs,
			Decls: parser.ScanDecls(l.files.Get(id)),
		}
		for _, d := range u.Decls {
			if prev, dup := local[d.Name]; dup {
				return &DuplicateDefinitionError{
					Name:       d.Name,
					Root:       abs,
					First:      prev.unit.Path,
					Second:     path,
					FirstSpan:  prev.decl.Span,
					SecondSpan: d.Span,
				}
			}
			local[d.Name] = entry{unit: u, decl: d}
		}
		units = append(units, u)
	}

	for name, e := range local {
		if _, shadowed := l.index[name]; !shadowed {
			l.index[name] = e
		}
	}
	l.roots = append(l.roots, abs)
	l.units = append(l.units, units...)
	return nil
}

// Resolve returns the unit defining name.
func (l *Locator) Resolve(name string) (*Unit, error) {
	e, ok := l.index[name]
	if !ok {
		return nil, &UnresolvedModuleError{Name: name}
	}
	return e.unit, nil
}

// Roots returns the registered roots (absolute) in registration order.
func (l *Locator) Roots() []string { return slices.Clone(l.roots) }

// Names returns every resolvable function name, sorted.
func (l *Locator) Names() []string {
	out := make([]string, 0, len(l.index))
	for name := range l.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Units returns all loaded units in scan order, shadowed ones included.
func (l *Locator) Units() []*Unit { return slices.Clone(l.units) }
