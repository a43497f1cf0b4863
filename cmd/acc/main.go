package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ashlang/internal/version"
)

// errReported signals that the failure was already rendered as a diagnostic.
var errReported = errors.New("reported")

// stopProfiling is replaced by the root pre-run hook when profiling is on.
var stopProfiling = func() {}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "acc [flags] <ENTRY_FN>",
		Short: "ashlang compiler and proof driver",
		Long: `acc compiles an ashlang entry function and everything it calls into
stack machine assembly, then executes and proves the program on the given
public and secret inputs.`,
		Args:          cobra.RangeArgs(0, 1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runProve,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			stop, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			stopProfiling = stop
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) { stopProfiling() },
	}
	root.Version = version.Version

	// Флаги запуска
	f := root.Flags()
	f.StringArrayP("include", "i", nil, "add a directory or .ash file to the search roots (repeatable)")
	f.BoolP("asm", "v", false, "print the emitted assembly before proving")
	f.StringP("public", "p", "", "comma-separated public inputs")
	f.StringP("secret", "s", "", "comma-separated secret inputs")
	f.String("proof-out", "", "write the proof artifacts (msgpack) to this file")
	f.Uint64("max-cycles", 0, "abort execution after this many cycles (0 = default)")
	f.Bool("cache", false, "reuse proofs from the on-disk cache")

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("ui", "off", "progress UI (auto|on|off)")
	pf.Bool("timings", false, "show timing information")
	pf.String("manifest", "", "path to ash.toml (default: search upward from the working directory)")
	pf.String("diag-format", "pretty", "diagnostic format (pretty|short|json)")
	pf.String("trace", "", "write a trace to this file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit trace heartbeats at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newAsmCmd(), newInspectCmd(), newVersionCmd())
	return root
}

// main builds the command tree and executes it. Any error exits with status 1.
func main() {
	err := newRootCmd().Execute()
	// post-run hooks are skipped on error
	stopProfiling()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
