package proctable

import (
	"context"
	"time"
)

// WithTimeout wraps t so every call runs under its own deadline. A
// non-positive d returns t unchanged: by default the shutdown sequence waits
// as long as the underlying utilities take.
func WithTimeout(t Table, d time.Duration) Table {
	if d <= 0 {
		return t
	}
	return &timeoutTable{inner: t, d: d}
}

type timeoutTable struct {
	inner Table
	d     time.Duration
}

func (t *timeoutTable) FindByPattern(ctx context.Context, pattern string) ([]Process, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.FindByPattern(ctx, pattern)
}

func (t *timeoutTable) SignalByPattern(ctx context.Context, pattern string, sig Signal) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.SignalByPattern(ctx, pattern, sig)
}
