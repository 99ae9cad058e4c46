package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRemote counts backend calls and serves a few canned routes.
type fakeRemote struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "GET /v1/get-material":
		_, _ = io.WriteString(w, `{"materials":[{"_id":"m1","name":"Brick"},{"_id":"m2","name":"Cement"}]}`)
	case "POST /v1/login":
		_, _ = io.WriteString(w, `{"token":"tok-123","name":"Ada","role":"admin"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Route not found"}`)
	}
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// setupCLI points the configuration at a fake backend and a temporary data file.
func setupCLI(t *testing.T) (*fakeRemote, string) {
	t.Helper()
	remote := &fakeRemote{}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	dataFile := filepath.Join(dir, "state.json")
	t.Setenv("SITEWORK_CONFIG_PATH", dir)
	t.Setenv("SITEWORK_API_BASE_URL", srv.URL)
	t.Setenv("SITEWORK_API_TOKEN", "")
	t.Setenv("SITEWORK_DATA_FILE_PATH", dataFile)
	return remote, dataFile
}

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagToken, flagConfig = "", ""
	loginEmail, loginPassword = "", ""
	userName, userPhone, userEmail, userPassword, userThumbnail = "", "", "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "No token found. Please login again.", errorMessage(backend.MissingToken()))
	assert.Equal(t, "Invalid credentials", errorMessage(&backend.Error{Kind: backend.KindServer, Status: 401, Message: "Invalid credentials"}))
	assert.Equal(t, "backend returned status 500", errorMessage(&backend.Error{Kind: backend.KindServer, Status: 500}))
	assert.Equal(t, "plain", errorMessage(errors.New("plain")))
}

func TestCLI_MaterialsListPersistsSnapshot(t *testing.T) {
	remote, dataFile := setupCLI(t)

	out, err := executeCLI(t, "materials", "list", "--token", "tok")
	require.NoError(t, err)
	assert.Contains(t, out, "Brick")
	assert.Equal(t, 1, remote.count())

	raw, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Cement")

	out, err = executeCLI(t, "state", "materials")
	require.NoError(t, err)
	assert.Contains(t, out, "Brick", "state is restored from the snapshot file")
	assert.Equal(t, 1, remote.count(), "state never fetches")
}

func TestCLI_MissingTokenNeverReachesBackend(t *testing.T) {
	remote, _ := setupCLI(t)

	_, err := executeCLI(t, "materials", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrMissingToken))
	assert.Equal(t, "No token found. Please login again.", errorMessage(err))
	assert.Zero(t, remote.count())
}

func TestCLI_LoginPrintsButDoesNotStoreToken(t *testing.T) {
	_, dataFile := setupCLI(t)

	out, err := executeCLI(t, "login", "--email", "ada@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "tok-123")

	raw, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Ada")
	assert.NotContains(t, string(raw), "tok-123")
}

func TestCLI_ValidationFailsLocally(t *testing.T) {
	remote, _ := setupCLI(t)

	_, err := executeCLI(t, "users", "register", "--token", "tok", "--name", "Ada", "--phone", "123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrValidation))
	assert.Zero(t, remote.count())
}

func TestCLI_ServerErrorMessage(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "projects", "delete", "p1", "--token", "tok")
	require.Error(t, err)
	assert.Equal(t, "Route not found", errorMessage(err))
}

func TestCLI_FailedFetchPersistsDataOnly(t *testing.T) {
	_, dataFile := setupCLI(t)

	_, err := executeCLI(t, "projects", "list", "--token", "tok")
	require.Error(t, err)
	assert.Equal(t, "Route not found", errorMessage(err))

	raw, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Route not found")

	out, err := executeCLI(t, "state", "projects")
	require.NoError(t, err)
	assert.Contains(t, out, `"error": null`)
	assert.Contains(t, out, `"loading": false`)
}

func TestCLI_StateUnknownStore(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "state", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")
}

func TestCLI_ArgumentsAreChecked(t *testing.T) {
	setupCLI(t)

	_, err := executeCLI(t, "users", "get")
	require.Error(t, err)
}

func TestCreateGraceHttpServer(t *testing.T) {
	cfg := config.ServerConfig{
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutDownTimeout: time.Second,
	}
	srv := createGraceHttpServer(context.Background(), "test", cfg, gin.New())
	assert.NotNil(t, srv)
}
