package repository

import "context"

// Store is a storage backend: DynamoDB, Postgres or in-memory.
type Store interface {
	Clubs() ClubRepository
	Players() PlayerRepository
	Ping(ctx context.Context) error
}

var (
	_ Store = (*DynamoStore)(nil)
	_ Store = (*PgxStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
