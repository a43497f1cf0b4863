package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ashlang/internal/pipeline"
	"ashlang/internal/trace"
)

func newAsmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm [flags] <ENTRY_FN>",
		Short: "Compile an entry function and print its assembly without proving",
		Args:  cobra.RangeArgs(0, 1),
		RunE:  runAsm,
	}
	cmd.Flags().StringArrayP("include", "i", nil, "add a directory or .ash file to the search roots (repeatable)")
	cmd.Flags().StringP("output", "o", "", "write the assembly to this file instead of stdout")
	cmd.Flags().Bool("graph", false, "print the call graph after the assembly")
	return cmd
}

func runAsm(cmd *cobra.Command, args []string) (err error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { cleanup(err != nil) }()

	fs := newFileSet()
	cfg, err := resolveRunConfig(cmd, args)
	if err != nil {
		return reportError(cmd, fs, err)
	}
	ctx, span := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "acc asm")
	res, err := pipeline.Run(ctx, &pipeline.Request{
		Entry:     cfg.entry,
		Includes:  cfg.includes,
		FileSet:   fs,
		SkipProve: true,
	})
	span.End(outcome(err))
	if err != nil {
		return reportError(cmd, fs, err)
	}

	out, _ := cmd.Flags().GetString("output")
	if out != "" {
		if err := os.WriteFile(out, []byte(res.Asm), 0o600); err != nil {
			return fmt.Errorf("write assembly: %w", err)
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), res.Asm)
	}

	if graph, _ := cmd.Flags().GetBool("graph"); graph {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "// call graph")
		for _, n := range res.Graph.Nodes() {
			fmt.Fprintf(w, "// %s (%s) -> %v\n", n.Name, n.Label, res.Graph.Callees(n.Name))
		}
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	return nil
}
