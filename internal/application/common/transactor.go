package common

import "context"

// Transactor runs fn inside a database transaction. Repositories called with
// the context passed to fn join that transaction. A nested call opens a
// savepoint, so a failing inner step can be rolled back on its own.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
