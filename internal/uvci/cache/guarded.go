package cache

import (
	"context"
	"errors"
	"fmt"

	"uvci/internal/uvci"
	"uvci/pkg/platform/circuit"
	"uvci/pkg/platform/sentinel"
)

// ErrCircuitOpen is returned while the breaker refuses calls to the backing
// cache.
var ErrCircuitOpen = fmt.Errorf("record cache circuit open: %w", sentinel.ErrUnavailable)

// Backend is a record cache that may fail.
type Backend interface {
	Get(ctx context.Context, key string) (uvci.Record, bool, error)
	Set(ctx context.Context, key string, rec uvci.Record) error
}

// Guarded stops calling an unavailable backend until the breaker's cooldown
// has passed. Only sentinel.ErrUnavailable failures count against it.
type Guarded struct {
	backend Backend
	breaker *circuit.Breaker
}

func NewGuarded(backend Backend, breaker *circuit.Breaker) *Guarded {
	return &Guarded{backend: backend, breaker: breaker}
}

func (g *Guarded) Get(ctx context.Context, key string) (uvci.Record, bool, error) {
	if !g.breaker.Allow() {
		return uvci.Record{}, false, ErrCircuitOpen
	}
	rec, ok, err := g.backend.Get(ctx, key)
	g.record(err)
	return rec, ok, err
}

func (g *Guarded) Set(ctx context.Context, key string, rec uvci.Record) error {
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}
	err := g.backend.Set(ctx, key, rec)
	g.record(err)
	return err
}

func (g *Guarded) record(err error) {
	if err != nil && errors.Is(err, sentinel.ErrUnavailable) {
		g.breaker.RecordFailure()
		return
	}
	g.breaker.RecordSuccess()
}
