package artifact

import (
	"context"

	"ashlang/internal/field"
	"ashlang/internal/trace"
	"ashlang/internal/tvm"
)

type prover interface {
	Prove(ctx context.Context, p *tvm.Program, public, secret []field.Element) (tvm.Artifacts, error)
}

// CachingEngine answers repeated proving runs from a Cache.
type CachingEngine struct {
	Engine prover
	Cache  *Cache
}

func (e *CachingEngine) Prove(ctx context.Context, p *tvm.Program, public, secret []field.Element) (tvm.Artifacts, error) {
	key := Key(p.Digest(), public, secret)
	if art, ok, err := e.Cache.Get(key); err == nil && ok {
		trace.Mark(ctx, trace.ScopeStep, "cache", "hit", trace.Attr{Key: "key", Value: key.String()[:16]})
		return art, nil
	}
	art, err := e.Engine.Prove(ctx, p, public, secret)
	if err != nil {
		return tvm.Artifacts{}, err
	}
	if err := e.Cache.Put(key, art); err != nil {
		trace.Mark(ctx, trace.ScopeStep, "cache", "store failed: "+err.Error())
	}
	return art, nil
}
