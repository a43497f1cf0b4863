package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"ashlang/internal/diag"
	"ashlang/internal/source"
)

// Short renders each diagnostic as one line:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// Diagnostics without a location drop the position prefix.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintln(w, ShortLine(&d, fs, mode))
	}
}

// ShortLine formats one diagnostic the way Short does.
func ShortLine(d *diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	var sb strings.Builder
	if d.HasSpan && fs != nil && fs.Get(d.Primary.File) != nil {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(&sb, "%s:%d:%d: ", displayPath(fs, d.Primary.File, mode), start.Line, start.Col)
	}
	fmt.Fprintf(&sb, "%s %s: %s", d.Severity, d.Code.ID(), d.Message)
	return sb.String()
}
