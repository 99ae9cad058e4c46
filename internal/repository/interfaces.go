package repository

import "context"

// Saver persists a Document.
// Small interface used by background jobs like the persistence scheduler.
type Saver interface {
	Save(ctx context.Context, doc *Document) error
}

// Repository abstracts persistence and watching of the snapshot file.
// JSONRepository implements this interface.
type Repository interface {
	Saver
	Load(ctx context.Context) (*Document, error)
	StartWatcher(ctx context.Context, cacheStore CacheStore) error
}
