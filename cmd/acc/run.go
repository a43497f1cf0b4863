package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ashlang/internal/artifact"
	"ashlang/internal/pipeline"
	"ashlang/internal/prover"
	"ashlang/internal/source"
	"ashlang/internal/trace"
	"ashlang/internal/tvm"
	"ashlang/internal/version"
)

func runProve(cmd *cobra.Command, args []string) (err error) {
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

	flags := cmd.Flags()
	showAsm, _ := flags.GetBool("asm")
	proofOut, _ := flags.GetString("proof-out")
	useCache, _ := flags.GetBool("cache")

	engine, err := newProverEngine(cfg.maxCycles, useCache)
	if err != nil {
		return err
	}
	req := &pipeline.Request{
		Entry:    cfg.entry,
		Includes: cfg.includes,
		Public:   cfg.public,
		Secret:   cfg.secret,
		Engine:   engine,
		FileSet:  fs,
	}
	if showAsm {
		req.OnAssembly = func(asm string) { fmt.Fprint(cmd.OutOrStdout(), asm) }
	}

	ctx, span := trace.StartSpan(cmd.Context(), trace.ScopeDriver, "acc")
	span.With("entry", cfg.entry)
	res, err := execute(ctx, cmd, req)
	span.End(outcome(err))

	if err != nil {
		return reportError(cmd, fs, err)
	}

	art := res.Artifacts
	fmt.Fprintln(cmd.OutOrStdout(), art.Parameters)
	fmt.Fprintln(cmd.OutOrStdout(), art.Claim)

	if proofOut != "" {
		env := artifact.NewEnvelope("acc "+version.Version, cfg.entry, *art)
		env.Timings = res.Timer.Report()
		if err := artifact.Save(proofOut, env); err != nil {
			return reportError(cmd, fs, fmt.Errorf("write proof: %w", err))
		}
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	return nil
}

// execute runs the pipeline, with the progress UI when requested.
func execute(ctx context.Context, cmd *cobra.Command, req *pipeline.Request) (pipeline.Result, error) {
	uiFlag, _ := cmd.Root().PersistentFlags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return pipeline.Result{FileSet: req.FileSet}, err
	}
	if shouldUseTUI(mode) {
		return runWithUI(ctx, req.Entry, req)
	}
	return pipeline.Run(ctx, req)
}

// newProverEngine is replaced in tests.
var newProverEngine = newEngine

func newEngine(maxCycles uint64, useCache bool) (prover.Engine, error) {
	var engine prover.Engine = tvm.NewEngine(tvm.WithMaxCycles(maxCycles))
	if !useCache {
		return engine, nil
	}
	cache, err := artifact.OpenCache("ashlang")
	if err != nil {
		return nil, fmt.Errorf("open proof cache: %w", err)
	}
	return &artifact.CachingEngine{Engine: engine, Cache: cache}, nil
}

func newFileSet() *source.FileSet {
	fs := source.NewFileSet()
	if cwd, err := os.Getwd(); err == nil {
		fs.SetBaseDir(filepath.Clean(cwd))
	}
	return fs
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return ""
}
