package db

import "context"

// Transactor runs a group of repository calls in one transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
