package repository

import "context"

// NoopTxManager runs fn directly. It is used by tests and by read paths that
// have no transaction manager wired.
type NoopTxManager struct{}

// Do calls fn with ctx.
func (NoopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
