// Package project reads ash.toml, the optional project manifest that supplies
// defaults for the entry function, include roots and run inputs.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ashlang/internal/diag"
)

// Manifest is a loaded ash.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Run     RunConfig     `toml:"run"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Entry   string   `toml:"entry"`
	Include []string `toml:"include"`
}

// RunConfig holds default inputs, in the same comma-separated form as the
// command-line flags.
type RunConfig struct {
	Public    string `toml:"public"`
	Secret    string `toml:"secret"`
	MaxCycles uint64 `toml:"max_cycles"`
}

// ManifestError reports an unreadable or incomplete manifest.
type ManifestError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

func (e *ManifestError) Code() diag.Code { return diag.ProjectManifest }

// Discover finds and loads the manifest above startDir. ok is false when
// there is none.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ManifestError{Path: path, Msg: "failed to parse TOML", Err: err}
	}
	if !meta.IsDefined("package") {
		return nil, &ManifestError{Path: path, Msg: "missing [package]"}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, &ManifestError{Path: path, Msg: "missing [package].name"}
	}
	if meta.IsDefined("build", "entry") && strings.TrimSpace(cfg.Build.Entry) == "" {
		return nil, &ManifestError{Path: path, Msg: "[build].entry is empty"}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ManifestError{Path: path, Msg: fmt.Sprintf("unknown key %q", undecoded[0].String())}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Entry returns the configured entry function, if any.
func (m *Manifest) Entry() string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Config.Build.Entry)
}

// IncludePaths resolves [build].include against the manifest directory.
// Blank entries are dropped.
func (m *Manifest) IncludePaths() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.Config.Build.Include))
	for _, inc := range m.Config.Build.Include {
		inc = strings.TrimSpace(inc)
		if inc == "" {
			continue
		}
		p := filepath.FromSlash(inc)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}
