package repository

import "context"

// TxManager runs fn inside a transaction. Nested calls join the outer
// transaction, so a service can be used standalone or as part of a larger
// unit of work. Repositories read the transaction from ctx.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
