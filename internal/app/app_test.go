package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/config"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/bassista/go_sitework/internal/repository"
)

// mockRepository implements repository.Repository for testing
type mockRepository struct {
	mu             sync.Mutex
	watcherStarted bool
	watcherErr     error
	saveErr        error
	saves          int
	doc            repository.Document
}

func (m *mockRepository) Load(ctx context.Context) (*repository.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.doc
	return &doc, nil
}

func (m *mockRepository) Save(ctx context.Context, doc *repository.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	if doc != nil {
		m.doc = *doc
	}
	return nil
}

func (m *mockRepository) StartWatcher(ctx context.Context, store repository.CacheStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watcherErr != nil {
		return m.watcherErr
	}
	m.watcherStarted = true
	return nil
}

func (m *mockRepository) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func testConfig() *config.Config {
	return &config.Config{
		API:  config.APIConfig{BaseURL: "http://backend.test", Timeout: time.Second, Token: "cfg-token"},
		Data: config.DataConfig{PersistInterval: time.Hour},
	}
}

func testClient(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.New(backend.Options{BaseURL: "http://backend.test"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestNew_Success(t *testing.T) {
	app, err := New(testConfig(), &mockRepository{}, testClient(t), cache.NewStores())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Service == nil || app.Service.Stores() != app.Stores {
		t.Error("expected service bound to the app stores")
	}
	if app.BaseCtx == nil || app.Cancel == nil {
		t.Error("expected base context to be set")
	}
}

func TestNew_NilDependencies(t *testing.T) {
	cfg := testConfig()
	repo := &mockRepository{}
	client := testClient(t)
	stores := cache.NewStores()

	tests := []struct {
		name string
		fn   func() (*App, error)
	}{
		{"nil config", func() (*App, error) { return New(nil, repo, client, stores) }},
		{"nil repo", func() (*App, error) { return New(cfg, nil, client, stores) }},
		{"nil client", func() (*App, error) { return New(cfg, repo, nil, stores) }},
		{"nil stores", func() (*App, error) { return New(cfg, repo, client, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestApp_WithToken(t *testing.T) {
	app, _ := New(testConfig(), &mockRepository{}, testClient(t), cache.NewStores())

	tok, ok := backend.TokenFrom(app.WithToken(context.Background(), "explicit"))
	if !ok || tok != "explicit" {
		t.Errorf("expected explicit token, got %q", tok)
	}

	tok, ok = backend.TokenFrom(app.WithToken(context.Background(), ""))
	if !ok || tok != "cfg-token" {
		t.Errorf("expected configured token, got %q", tok)
	}

	app.Config.API.Token = ""
	if _, ok := backend.TokenFrom(app.WithToken(context.Background(), "")); ok {
		t.Error("expected no token")
	}
}

func TestApp_StartWatchers_WatcherError(t *testing.T) {
	repo := &mockRepository{watcherErr: errors.New("no inotify")}
	app, _ := New(testConfig(), repo, testClient(t), cache.NewStores())
	defer app.Shutdown()

	if err := app.StartWatchers(); err == nil {
		t.Error("expected watcher error to be returned")
	}
}

func TestApp_ShutdownFlushesDirtyStores(t *testing.T) {
	repo := &mockRepository{}
	stores := cache.NewStores()
	app, _ := New(testConfig(), repo, testClient(t), stores)

	if err := app.StartWatchers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.watcherStarted {
		t.Error("expected watcher to be started")
	}
	if app.Refresh != nil {
		t.Error("expected no refresh scheduler without an interval")
	}

	stores.Materials.Restore([]domain.Material{{ID: "m1", Name: "Brick"}})
	app.Shutdown()

	if repo.saveCount() != 1 {
		t.Errorf("expected final flush, got %d saves", repo.saveCount())
	}
	if len(repo.doc.Materials) != 1 {
		t.Errorf("expected materials persisted, got %v", repo.doc.Materials)
	}
}

func TestApp_StartWatchers_RefreshScheduler(t *testing.T) {
	cfg := testConfig()
	cfg.Data.RefreshInterval = time.Hour
	app, _ := New(cfg, &mockRepository{}, testClient(t), cache.NewStores())
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Refresh == nil {
		t.Error("expected refresh scheduler to be started")
	}
}

func TestApp_Flush(t *testing.T) {
	repo := &mockRepository{}
	stores := cache.NewStores()
	app, _ := New(testConfig(), repo, testClient(t), stores)

	app.Flush(context.Background())
	if repo.saveCount() != 0 {
		t.Error("expected clean stores not to be saved")
	}

	stores.ProfileThumbnail.Restore("me.png")
	app.Flush(context.Background())
	if repo.saveCount() != 1 || repo.doc.ProfileThumbnail != "me.png" {
		t.Errorf("expected one save with the thumbnail, got %d", repo.saveCount())
	}
}

func TestBootstrap_RestoresSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"metadata":{"lastUpdate":42},"materials":[{"_id":"m1","name":"Brick"}]}`), 0o600); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	cfg := testConfig()
	cfg.Data.FilePath = path

	app, err := Bootstrap(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer app.Shutdown()

	if got := app.Stores.Materials.Data(); len(got) != 1 || got[0].Name != "Brick" {
		t.Errorf("expected restored materials, got %v", got)
	}
	if app.Stores.GetLastUpdate() != 42 {
		t.Errorf("expected lastUpdate 42, got %d", app.Stores.GetLastUpdate())
	}
	if app.Stores.IsDirty() {
		t.Error("expected restored stores to be clean")
	}
}

func TestBootstrap_IgnoresCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	cfg := testConfig()
	cfg.Data.FilePath = path

	app, err := Bootstrap(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer app.Shutdown()

	if len(app.Stores.Materials.Data()) != 0 {
		t.Error("expected empty stores")
	}
}

func TestBootstrap_InvalidBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.Data.FilePath = filepath.Join(t.TempDir(), "state.json")
	cfg.API.BaseURL = ""

	if _, err := Bootstrap(cfg); err == nil {
		t.Error("expected error for missing base url")
	}
}

func TestApp_Shutdown(t *testing.T) {
	app, _ := New(testConfig(), &mockRepository{}, testClient(t), cache.NewStores())

	select {
	case <-app.BaseCtx.Done():
		t.Error("context should not be done before shutdown")
	default:
	}

	app.Shutdown()

	select {
	case <-app.BaseCtx.Done():
	default:
		t.Error("context should be done after shutdown")
	}
}

func TestApp_Shutdown_Nil(t *testing.T) {
	var app *App
	app.Shutdown()
}

func TestApp_Shutdown_NilCancel(t *testing.T) {
	app := &App{Cancel: nil}
	app.Shutdown()
}
