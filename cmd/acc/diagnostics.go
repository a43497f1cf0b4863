package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ashlang/internal/diag"
	"ashlang/internal/diagfmt"
	"ashlang/internal/parser"
	"ashlang/internal/source"
)

// reportError renders err as diagnostics on stderr and returns errReported.
func reportError(cmd *cobra.Command, fs *source.FileSet, err error) error {
	if err == nil || errors.Is(err, errReported) {
		return err
	}
	root := cmd.Root().PersistentFlags()
	format, _ := root.GetString("diag-format")
	colorFlag, _ := root.GetString("color")
	useColor, cerr := readColor(colorFlag, os.Stderr)
	if cerr != nil {
		return cerr
	}

	bag := diag.NewBag(100)
	var pe *parser.Error
	if errors.As(err, &pe) && len(pe.Diags) > 0 {
		for _, d := range pe.Diags {
			bag.Add(d)
		}
	} else {
		bag.Add(diag.FromError(err))
	}
	bag.Sort()

	w := cmd.ErrOrStderr()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "short":
		diagfmt.Short(w, bag, fs, diagfmt.PathModeAuto)
	case "json":
		if jerr := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); jerr != nil {
			return jerr
		}
	case "", "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: useColor, Context: 1, ShowNotes: true})
	default:
		return fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", format)
	}
	return errReported
}
