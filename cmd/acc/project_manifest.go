package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ashlang/internal/inputs"
	"ashlang/internal/project"
)

const noEntryMessage = "no entry function given\nplease name it explicitly, e.g.:\n  acc -i src main\nor set [build].entry in ash.toml"

// runConfig is the effective configuration of one run: flags first, then
// ash.toml defaults.
type runConfig struct {
	entry     string
	includes  []string
	public    inputs.Sequence
	secret    inputs.Sequence
	maxCycles uint64
	manifest  *project.Manifest
}

func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("manifest")
	if err != nil {
		return nil, fmt.Errorf("failed to get manifest flag: %w", err)
	}
	if path != "" {
		return project.Load(path)
	}
	m, _, err := project.Discover(".")
	return m, err
}

func resolveRunConfig(cmd *cobra.Command, args []string) (runConfig, error) {
	var cfg runConfig
	m, err := loadManifest(cmd)
	if err != nil {
		return cfg, err
	}
	cfg.manifest = m

	switch {
	case len(args) > 0 && strings.TrimSpace(args[0]) != "":
		cfg.entry = strings.TrimSpace(args[0])
	case m.Entry() != "":
		cfg.entry = m.Entry()
	default:
		return cfg, errors.New(noEntryMessage)
	}

	flags := cmd.Flags()
	if flags.Lookup("include") != nil {
		cli, err := flags.GetStringArray("include")
		if err != nil {
			return cfg, err
		}
		cfg.includes = append(cfg.includes, cli...)
	}
	cfg.includes = append(cfg.includes, m.IncludePaths()...)

	if flags.Lookup("public") == nil {
		return cfg, nil
	}
	if cfg.public, err = packFlag(cmd, "public", m, func(r project.RunConfig) string { return r.Public }); err != nil {
		return cfg, err
	}
	if cfg.secret, err = packFlag(cmd, "secret", m, func(r project.RunConfig) string { return r.Secret }); err != nil {
		return cfg, err
	}
	cfg.maxCycles, err = flags.GetUint64("max-cycles")
	if err != nil {
		return cfg, err
	}
	if !flags.Changed("max-cycles") && m != nil {
		cfg.maxCycles = m.Config.Run.MaxCycles
	}
	return cfg, nil
}

// packFlag reads a comma-separated input list from the flag, falling back to
// the manifest value when the flag was not given.
func packFlag(cmd *cobra.Command, name string, m *project.Manifest, fromManifest func(project.RunConfig) string) (inputs.Sequence, error) {
	var raw *string
	if cmd.Flags().Changed(name) {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, err
		}
		raw = &v
	} else if m != nil {
		v := fromManifest(m.Config.Run)
		raw = &v
	}
	seq, err := inputs.PackOptional(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return seq, nil
}
