package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/config"
	"github.com/bassista/go_sitework/internal/logger"
	"github.com/bassista/go_sitework/internal/repository"
	"github.com/bassista/go_sitework/internal/scheduler"
	"github.com/bassista/go_sitework/internal/service"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config  *config.Config
	Repo    repository.Repository
	Stores  *cache.Stores
	Client  *backend.Client
	Service *service.Service

	BaseCtx context.Context
	Cancel  context.CancelFunc

	persistDone <-chan struct{}
	Refresh     *scheduler.RefreshScheduler
}

func New(cfg *config.Config, repo repository.Repository, client *backend.Client, stores *cache.Stores) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if repo == nil {
		return nil, errors.New("repo is nil")
	}
	if client == nil {
		return nil, errors.New("backend client is nil")
	}
	if stores == nil {
		return nil, errors.New("stores are nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:  cfg,
		Repo:    repo,
		Stores:  stores,
		Client:  client,
		Service: service.New(client, stores),
		BaseCtx: ctx,
		Cancel:  cancel,
	}, nil
}

// Bootstrap wires every dependency from cfg and restores the stores from the
// snapshot file.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	repo, err := repository.NewJSONRepository(cfg.Data.FilePath)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	stores := cache.NewStores()
	doc, err := repo.Load(context.Background())
	if err != nil {
		// a corrupt snapshot only costs cached data
		logger.WithComponent("app").Warnf("ignoring unreadable data file %s: %v", cfg.Data.FilePath, err)
	} else if err := stores.Replace(*doc); err != nil {
		return nil, fmt.Errorf("restore stores: %w", err)
	}

	client, err := backend.New(backend.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	return New(cfg, repo, client, stores)
}

// WithToken attaches token to ctx, falling back to the configured token.
func (a *App) WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		token = a.Config.API.Token
	}
	if token == "" {
		return ctx
	}
	return backend.WithToken(ctx, token)
}

// Flush writes the stores to disk if they changed.
func (a *App) Flush(ctx context.Context) {
	cache.Flush(ctx, a.Stores, a.Repo)
}

// StartWatchers starts the snapshot file watcher, the persistence scheduler
// and, when configured, the refresh scheduler.
func (a *App) StartWatchers() error {
	if err := a.Repo.StartWatcher(a.BaseCtx, a.Stores); err != nil {
		return fmt.Errorf("cannot start data file watcher: %w", err)
	}

	a.persistDone = cache.StartPersistenceScheduler(a.BaseCtx, a.Stores, a.Repo, a.Config.Data.PersistInterval)

	if a.Config.Data.RefreshInterval > 0 {
		a.Refresh = scheduler.NewRefreshScheduler(a.Service, func() string { return a.Config.API.Token }, a.Config.Data.RefreshInterval)
		a.Refresh.Start(a.BaseCtx)
	}
	return nil
}

// Shutdown cancels the base context and waits for the final flush.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	if a.persistDone != nil {
		<-a.persistDone
	}
}
