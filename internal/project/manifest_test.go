package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"

[build]
entry = "main"
include = ["src", "", "/abs/lib"]

[run]
public = "2,3"
secret = "7"
max_cycles = 5000
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("discover: ok=%v err=%v", ok, err)
	}
	if m.Entry() != "main" || m.Config.Package.Name != "demo" {
		t.Fatalf("config = %+v", m.Config)
	}
	want := []string{filepath.Join(m.Root, "src"), filepath.FromSlash("/abs/lib")}
	if diff := cmp.Diff(want, m.IncludePaths()); diff != "" {
		t.Fatalf("includes mismatch (-want +got):\n%s", diff)
	}
	if m.Config.Run.Public != "2,3" || m.Config.Run.Secret != "7" || m.Config.Run.MaxCycles != 5000 {
		t.Fatalf("run config = %+v", m.Config.Run)
	}
	if got, _, _ := FindProjectRoot(nested); got != m.Root {
		t.Fatalf("project root = %q, want %q", got, m.Root)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	m, ok, err := Discover(t.TempDir())
	if err != nil || ok || m != nil {
		t.Fatalf("got %v, %v, %v", m, ok, err)
	}
	var nilManifest *Manifest
	if nilManifest.Entry() != "" || nilManifest.IncludePaths() != nil {
		t.Fatal("nil manifest must yield no defaults")
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"missing [package]":      "[build]\nentry = \"main\"\n",
		"missing [package].name": "[package]\nname = \"  \"\n",
		"[build].entry is empty": "[package]\nname = \"x\"\n[build]\nentry = \"\"\n",
		"unknown key":            "[package]\nname = \"x\"\nversion = \"1\"\n",
		"failed to parse TOML":   "[package\n",
	}
	for want, body := range cases {
		path := writeManifest(t, t.TempDir(), body)
		_, err := Load(path)
		var me *ManifestError
		if !errors.As(err, &me) {
			t.Fatalf("%s: expected ManifestError, got %v", want, err)
		}
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not contain %q", err, want)
		}
	}
}
