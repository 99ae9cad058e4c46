package cache

import "github.com/bassista/go_sitework/internal/repository"

// PersistableStore is the cache API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Snapshot() (repository.Document, error)
	ClearDirty()
	SetLastUpdate(ts int64)
}

// AppStore is the cache contract the application container exposes to the
// persistence scheduler and the repository watcher.
type AppStore interface {
	repository.CacheStore
	PersistableStore
}

var _ AppStore = (*Stores)(nil)
