package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"ashlang/internal/field"
	"ashlang/internal/tvm"
)

func proveAddTwo(t *testing.T) (*tvm.Program, tvm.Artifacts) {
	t.Helper()
	p, err := tvm.Assemble("read_io 1\nread_io 1\nadd\nwrite_io 1\nhalt")
	if err != nil {
		t.Fatal(err)
	}
	art, err := tvm.NewEngine().Prove(context.Background(), p, field.Elements(2, 3), nil)
	if err != nil {
		t.Fatal(err)
	}
	return p, art
}

func TestSaveLoadRoundTrip(t *testing.T) {
	_, art := proveAddTwo(t)
	path := filepath.Join(t.TempDir(), "out", "proof.mp")
	if err := Save(path, NewEnvelope("acc test", "main", art)); err != nil {
		t.Fatalf("save: %v", err)
	}
	env, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if env.Entry != "main" || env.Tool != "acc test" {
		t.Fatalf("envelope = %+v", env)
	}
	if diff := cmp.Diff(art, env.Artifacts); diff != "" {
		t.Fatalf("artifacts changed (-want +got):\n%s", diff)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestLoadRejectsOtherSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.mp")
	data, err := msgpack.Marshal(&Envelope{Schema: schemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

type countingEngine struct {
	inner *tvm.Engine
	calls int
}

func (c *countingEngine) Prove(ctx context.Context, p *tvm.Program, public, secret []field.Element) (tvm.Artifacts, error) {
	c.calls++
	return c.inner.Prove(ctx, p, public, secret)
}

func TestCachingEngine(t *testing.T) {
	cache, err := OpenCacheDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p, want := proveAddTwo(t)
	inner := &countingEngine{inner: tvm.NewEngine()}
	eng := &CachingEngine{Engine: inner, Cache: cache}

	for range 2 {
		got, err := eng.Prove(context.Background(), p, field.Elements(2, 3), nil)
		if err != nil {
			t.Fatalf("prove: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("artifacts mismatch (-want +got):\n%s", diff)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("engine ran %d times, want 1", inner.calls)
	}

	if _, err := eng.Prove(context.Background(), p, field.Elements(3, 2), nil); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("different inputs must miss the cache")
	}

	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(Key(p.Digest(), field.Elements(2, 3), nil)); ok {
		t.Fatal("entry survived Clear")
	}
}

func TestKeySeparatesTapes(t *testing.T) {
	var d tvm.Digest
	a := Key(d, field.Elements(1), nil)
	b := Key(d, nil, field.Elements(1))
	if a == b {
		t.Fatal("public and secret inputs must not collide")
	}
}
