package contracts

import "context"

// Transactor runs fn inside one storage transaction. Nested calls made with
// the context handed to fn join the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
