package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bassista/go_sitework/internal/domain"
)

func createTestDocument() Document {
	doc := Document{
		Metadata:  Metadata{LastUpdate: 1000},
		Auth:      domain.Session{Name: "Ada", Role: domain.RoleAdmin},
		AllUsers:  []domain.User{{ID: "u1", Name: "Ada", Phone: "0123456789"}},
		Projects:  []domain.Project{{ID: "p1", Name: "Tower", ProjectPdf: domain.FileList{"plan.pdf"}}},
		Materials: []domain.Material{{ID: "m1", Name: "Brick"}, {ID: "m2", Name: "Cement"}},
	}
	doc.ApplyDefaults()
	return doc
}

func writeDocument(t *testing.T, path string, doc Document) {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
}

func TestNewJSONRepository_Success(t *testing.T) {
	repo, err := NewJSONRepository(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo == nil {
		t.Error("expected repository to be created")
	}
}

func TestNewJSONRepository_EmptyPath(t *testing.T) {
	if _, err := NewJSONRepository(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestJSONRepository_LoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	writeDocument(t, path, createTestDocument())

	repo, err := NewJSONRepository(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Materials) != 2 || loaded.Materials[1].Name != "Cement" {
		t.Errorf("unexpected materials: %+v", loaded.Materials)
	}
	if loaded.Auth.Role != domain.RoleAdmin {
		t.Errorf("expected admin session, got %+v", loaded.Auth)
	}

	loaded.Materials = loaded.Materials[:1]
	loaded.Metadata.LastUpdate = 2000
	if err := repo.Save(context.Background(), loaded); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	reloaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if len(reloaded.Materials) != 1 {
		t.Errorf("expected 1 material after save, got %d", len(reloaded.Materials))
	}
	if reloaded.Metadata.LastUpdate != 2000 {
		t.Errorf("expected lastUpdate 2000, got %d", reloaded.Metadata.LastUpdate)
	}
	if got := reloaded.Projects[0].ProjectPdf; len(got) != 1 || got[0] != "plan.pdf" {
		t.Errorf("expected project pdf to survive round trip, got %v", got)
	}
}

func TestJSONRepository_Load_EmptyObjectAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	repo, _ := NewJSONRepository(path)
	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Materials == nil || len(doc.Materials) != 0 {
		t.Errorf("expected empty materials, got %v", doc.Materials)
	}
	if doc.ProjectByProjectID.ProjectPdf == nil {
		t.Error("expected project pdf list to be initialized")
	}
	if doc.UserDetail != nil {
		t.Error("expected no user detail")
	}
}

func TestJSONRepository_Load_FileNotFound(t *testing.T) {
	repo, _ := NewJSONRepository(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJSONRepository_Load_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{invalid json}"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	repo, _ := NewJSONRepository(path)
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestJSONRepository_Load_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	// a user without an id is rejected
	if err := os.WriteFile(path, []byte(`{"allUsers":[{"name":"nobody"}]}`), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	repo, _ := NewJSONRepository(path)
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("expected validation error")
	}
}

func TestJSONRepository_Load_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	writeDocument(t, path, createTestDocument())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo, _ := NewJSONRepository(path)
	if _, err := repo.Load(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestJSONRepository_Save_NilDocument(t *testing.T) {
	repo, _ := NewJSONRepository(filepath.Join(t.TempDir(), "state.json"))
	if err := repo.Save(context.Background(), nil); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestJSONRepository_Save_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repo, _ := NewJSONRepository(path)

	doc := createTestDocument()
	doc.Materials = append(doc.Materials, domain.Material{Name: "no id"})

	if err := repo.Save(context.Background(), &doc); err == nil {
		t.Error("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file to be written")
	}
}

func TestJSONRepository_Save_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo, _ := NewJSONRepository(filepath.Join(dir, "state.json"))

	doc := createTestDocument()
	if err := repo.Save(context.Background(), &doc); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		t.Errorf("expected only state.json, got %v", entries)
	}
}

// MockCacheStore implements CacheStore for testing
type MockCacheStore struct {
	lastUpdate int64
	dirty      bool
	doc        Document
	replaced   chan struct{}
}

func newMockCacheStore(lastUpdate int64, dirty bool, doc Document) *MockCacheStore {
	return &MockCacheStore{lastUpdate: lastUpdate, dirty: dirty, doc: doc, replaced: make(chan struct{}, 1)}
}

func (m *MockCacheStore) GetLastUpdate() int64 {
	return m.lastUpdate
}

func (m *MockCacheStore) IsDirty() bool {
	return m.dirty
}

func (m *MockCacheStore) Snapshot() (Document, error) {
	return m.doc, nil
}

func (m *MockCacheStore) Replace(doc Document) error {
	m.doc = doc
	m.lastUpdate = doc.Metadata.LastUpdate
	select {
	case m.replaced <- struct{}{}:
	default:
	}
	return nil
}

func (m *MockCacheStore) wasReplaced() bool {
	select {
	case <-m.replaced:
		return true
	default:
		return false
	}
}

func TestJSONRepository_MakeWatcherCallback(t *testing.T) {
	tests := []struct {
		name         string
		diskUpdate   int64
		cacheUpdate  int64
		dirty        bool
		sameContent  bool
		wantReplaced bool
	}{
		{name: "reloads when disk newer", diskUpdate: 2000, cacheUpdate: 1000, wantReplaced: true},
		{name: "skips when disk older", diskUpdate: 500, cacheUpdate: 1000},
		{name: "skips when dirty", diskUpdate: 2000, cacheUpdate: 1000, dirty: true},
		{name: "skips when same content", diskUpdate: 1000, cacheUpdate: 1000, sameContent: true},
		{name: "reloads when same version differs", diskUpdate: 1000, cacheUpdate: 1000, wantReplaced: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.json")
			doc := createTestDocument()
			doc.Metadata.LastUpdate = tt.diskUpdate
			writeDocument(t, path, doc)

			repo, _ := NewJSONRepository(path)
			jsonRepo := repo.(*JSONRepository)

			cached := Document{}
			cached.ApplyDefaults()
			if tt.sameContent {
				cached = doc
			}
			cache := newMockCacheStore(tt.cacheUpdate, tt.dirty, cached)

			jsonRepo.MakeWatcherCallback(cache)()

			if got := cache.wasReplaced(); got != tt.wantReplaced {
				t.Errorf("replaced = %v, want %v", got, tt.wantReplaced)
			}
		})
	}
}

func TestJSONRepository_StartWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := createTestDocument()
	writeDocument(t, path, doc)

	repo, _ := NewJSONRepository(path)
	cache := newMockCacheStore(doc.Metadata.LastUpdate, false, doc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := repo.StartWatcher(ctx, cache); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}

	newer := createTestDocument()
	newer.Metadata.LastUpdate = 5000
	newer.Materials = newer.Materials[:1]
	writeDocument(t, path, newer)

	select {
	case <-cache.replaced:
	case <-time.After(3 * time.Second):
		t.Fatal("expected cache to be reloaded after external write")
	}
}

func TestJSONRepository_StartWatcher_NilStore(t *testing.T) {
	repo, _ := NewJSONRepository(filepath.Join(t.TempDir(), "state.json"))
	if err := repo.StartWatcher(context.Background(), nil); err == nil {
		t.Error("expected error for nil cache store")
	}
}
