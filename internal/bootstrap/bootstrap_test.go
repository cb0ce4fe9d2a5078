package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/biblio-admin/config"
	"github.com/openshelf/biblio-admin/internal/adapters/filestore"
	"github.com/openshelf/biblio-admin/internal/adapters/memstore"
	"github.com/openshelf/biblio-admin/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildCredentialStore_Memory(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Storage.Backend = config.StorageBackendMemory

	store, err := BuildCredentialStore(cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, store)
}

func TestBuildCredentialStore_File(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Storage.Backend = config.StorageBackendFile
	cfg.Storage.Dir = t.TempDir()

	store, err := BuildCredentialStore(cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &filestore.Store{}, store)
}

func TestBuildCredentialStore_UnknownBackend(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.Storage.Backend = config.StorageBackend("vault")

	_, err := BuildCredentialStore(cfg, discardLogger())
	require.Error(t, err)
}

func TestBuildGateway_RequiresBaseURL(t *testing.T) {
	_, err := BuildGateway(config.APIConfig{}, discardLogger())
	require.Error(t, err)
}

func TestBuildSessionController(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.API.BaseURL = "http://localhost:8080/api/v1"
	cfg.Storage.Backend = config.StorageBackendMemory
	cfg.Auth.ClaimsMode = config.ClaimsModeMinimal

	ctrl, err := BuildSessionController(cfg, discardLogger())
	require.NoError(t, err)
	defer ctrl.Close()

	assert.False(t, ctrl.Snapshot().IsAuthenticated())
}

func TestBuildResolver(t *testing.T) {
	gw, err := BuildGateway(config.APIConfig{BaseURL: "http://localhost:8080"}, discardLogger())
	require.NoError(t, err)

	r, err := buildResolver(config.ClaimsModeEmbedded, gw)
	require.NoError(t, err)
	assert.IsType(t, session.ClaimsResolver{}, r)

	r, err = buildResolver(config.ClaimsModeMinimal, gw)
	require.NoError(t, err)
	assert.IsType(t, &session.GatewayResolver{}, r)

	_, err = buildResolver(config.ClaimsMode("oauth"), gw)
	require.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StorageBackendFile, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.API.BaseURL)
}
