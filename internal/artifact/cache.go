package artifact

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/sha3"

	"ashlang/internal/field"
	"ashlang/internal/tvm"
)

// Cache хранит артефакты доказательств по ключу (программа, входы).
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// OpenCache initializes a cache at the standard location for app.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir uses dir as the cache root.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key identifies a proving run.
func Key(program tvm.Digest, public, secret []field.Element) tvm.Digest {
	h := sha3.New256()
	h.Write(program[:])
	var buf [8]byte
	for _, seq := range [][]field.Element{public, secret} {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(seq)))
		h.Write(buf[:])
		for _, v := range seq {
			binary.LittleEndian.PutUint64(buf[:], v.Uint64())
			h.Write(buf[:])
		}
	}
	var d tvm.Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *Cache) pathFor(key tvm.Digest) string {
	// Для удобства очистки — подкаталог "proofs".
	return filepath.Join(c.dir, "proofs", key.String()+".mp")
}

// Put stores artifacts under key.
func (c *Cache) Put(key tvm.Digest, art tvm.Artifacts) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.pathFor(key), &Envelope{Schema: schemaVersion, Artifacts: art})
}

// Get loads artifacts stored under key. A miss is not an error.
func (c *Cache) Get(key tvm.Digest) (tvm.Artifacts, bool, error) {
	if c == nil {
		return tvm.Artifacts{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var env Envelope
	if err := readFile(c.pathFor(key), &env); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tvm.Artifacts{}, false, nil
		}
		return tvm.Artifacts{}, false, err
	}
	if env.Schema != schemaVersion {
		return tvm.Artifacts{}, false, nil
	}
	return env.Artifacts, true, nil
}

// Clear drops every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "proofs"))
}
