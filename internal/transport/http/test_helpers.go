package http

import (
	"context"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/akorchagin/pairchat-server/internal/auth"
	"github.com/akorchagin/pairchat-server/internal/config"
	"github.com/akorchagin/pairchat-server/internal/core"
	"github.com/akorchagin/pairchat-server/internal/service/dm"
	"github.com/akorchagin/pairchat-server/internal/store"
	"github.com/akorchagin/pairchat-server/internal/store/jsonfile"
)

// createTestStore creates a jsonfile store rooted in a temp directory.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// createTestAuthService creates an auth service for testing.
func createTestAuthService(t *testing.T, st store.Store, jwtSecret string) *auth.Service {
	t.Helper()

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(jwtSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return auth.NewService(st, jwtConfig)
}

// testEnv bundles everything a handler test needs.
type testEnv struct {
	server      *stdhttp.Server
	store       store.Store
	authService *auth.Service
	hub         *core.Hub
}

// newTestEnv builds a full server against a temp-dir store with a running hub.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testStore := createTestStore(t)
	authService := createTestAuthService(t, testStore, "test-secret")

	hub := core.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	dmService := dm.New(testStore, hub)

	disabledLogger := zerolog.New(nil)
	cfg := config.Default()
	cfg.Addr = ":0"

	server := NewServer(hub, authService, dmService, testStore, &cfg, &disabledLogger)

	return &testEnv{
		server:      server,
		store:       testStore,
		authService: authService,
		hub:         hub,
	}
}
