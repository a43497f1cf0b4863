package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ashlang/internal/ast"
	"ashlang/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is within file content bounds
// 2) every function span is non-empty and fully contained in file.Span
// 3) every function name span lies inside its function span
// 4) file.Span covers the union of function spans (if any exist)
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span out of bounds: %v (len %d)", f.Span, lenContent)
	}

	var union source.Span
	for i, fn := range f.Funcs {
		sp := fn.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty span for fn %s: %v", fn.Name, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("fn %s span file mismatch: got=%d want=%d", fn.Name, sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("fn %s span %v is outside file span %v", fn.Name, sp, f.Span)
		}
		if fn.NameSpan.Start < sp.Start || fn.NameSpan.End > sp.End {
			return fmt.Errorf("fn %s name span %v is outside %v", fn.Name, fn.NameSpan, sp)
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if len(f.Funcs) > 0 && (f.Span.Start > union.Start || f.Span.End < union.End) {
		return fmt.Errorf("file span %v does not cover functions %v", f.Span, union)
	}
	return nil
}
