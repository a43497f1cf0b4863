// Package artifact persists proof artifacts as msgpack files and keeps an
// optional on-disk cache of proving runs.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"ashlang/internal/observ"
	"ashlang/internal/tvm"
)

// Current schema version - increment when Envelope format changes
const schemaVersion uint16 = 1

// ErrSchema reports a file written by an incompatible version.
var ErrSchema = errors.New("artifact schema mismatch")

// Envelope is what --proof-out writes.
type Envelope struct {
	Schema    uint16        `msgpack:"schema"`
	Tool      string        `msgpack:"tool"`
	Entry     string        `msgpack:"entry"`
	Artifacts tvm.Artifacts `msgpack:"artifacts"`
	Timings   observ.Report `msgpack:"timings,omitempty"`
}

// NewEnvelope wraps artifacts of a run of entry.
func NewEnvelope(tool, entry string, art tvm.Artifacts) *Envelope {
	return &Envelope{Schema: schemaVersion, Tool: tool, Entry: entry, Artifacts: art}
}

// Save writes env to path atomically.
func Save(path string, env *Envelope) error {
	if env == nil {
		return fmt.Errorf("save %s: nil envelope", path)
	}
	if env.Schema == 0 {
		env.Schema = schemaVersion
	}
	return writeAtomic(path, env)
}

// Load reads an envelope written by Save.
func Load(path string) (*Envelope, error) {
	var env Envelope
	if err := readFile(path, &env); err != nil {
		return nil, err
	}
	if env.Schema != schemaVersion {
		return nil, fmt.Errorf("load %s: %w: got %d, want %d", path, ErrSchema, env.Schema, schemaVersion)
	}
	return &env, nil
}

func writeAtomic(path string, v any) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

func readFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
