package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ashlang/internal/artifact"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <proof-file>",
		Short: "Decode and print a proof artifact written by --proof-out",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	env, err := artifact.Load(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "entry: %s\n", env.Entry)
	if env.Tool != "" {
		fmt.Fprintf(w, "tool: %s\n", env.Tool)
	}
	fmt.Fprintln(w, env.Artifacts.Parameters)
	fmt.Fprintln(w, env.Artifacts.Claim)
	p := env.Artifacts.Proof
	fmt.Fprintf(w, "Proof { cycles: %d, padded_height: %d, merkle_root: %s }\n", p.Cycles, p.PaddedHeight, p.MerkleRoot)
	if len(env.Timings.Phases) > 0 {
		for _, ph := range env.Timings.Phases {
			fmt.Fprintf(w, "  %-10s %8.3f ms\n", ph.Name, ph.DurationMS)
		}
	}
	return nil
}
