package locator

import (
	"fmt"

	"ashlang/internal/diag"
	"ashlang/internal/source"
)

// UnresolvedModuleError reports a function name no registered root defines.
// Site is set when the name came from a call expression.
type UnresolvedModuleError struct {
	Name string
	Site *source.Span
}

func (e *UnresolvedModuleError) Error() string {
	return fmt.Sprintf("unresolved module: no function %q in any include root", e.Name)
}

func (e *UnresolvedModuleError) Code() diag.Code { return diag.SemaUnresolvedModule }

func (e *UnresolvedModuleError) Location() (source.Span, bool) {
	if e.Site == nil {
		return source.Span{}, false
	}
	return *e.Site, true
}

// DuplicateDefinitionError reports two definitions of one name inside a single root.
type DuplicateDefinitionError struct {
	Name          string
	Root          string
	First, Second string
	FirstSpan     source.Span
	SecondSpan    source.Span
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate definition of %q in root %s: %s and %s", e.Name, e.Root, e.First, e.Second)
}

func (e *DuplicateDefinitionError) Code() diag.Code { return diag.SemaDuplicateDefinition }

func (e *DuplicateDefinitionError) Location() (source.Span, bool) {
	return e.SecondSpan, true
}

func (e *DuplicateDefinitionError) Notes() []diag.Note {
	return []diag.Note{{Span: e.FirstSpan, Msg: "first defined here"}}
}
