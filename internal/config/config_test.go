package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FOLLOWUP_DISPATCH_INTERVAL", "")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, defaultDSN, cfg.DSN)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:trackjob.db")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://trackjob.app,")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:trackjob.db", cfg.DSN)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://trackjob.app"}, cfg.CORSOrigins)
}

func TestLoadServerRejectsBadInput(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadServer()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = LoadServer()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL", "forever")
	_, err = LoadServer()
	assert.Error(t, err)
}

func TestLoadClient(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TRACKJOB_HOME", home)
	t.Setenv("TRACKJOB_API_URL", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, filepath.Join(home, "session.json"), cfg.DurableSessionPath)
	assert.NotEqual(t, cfg.DurableSessionPath, cfg.SessionPath)
	assert.Contains(t, cfg.SessionPath, os.TempDir())
}

func TestLoadMissingFileIsFine(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRACKJOB_TEST_VALUE=from-file\n"), 0o600))
	t.Setenv("TRACKJOB_TEST_VALUE", "")
	os.Unsetenv("TRACKJOB_TEST_VALUE")

	require.NoError(t, Load(path))
	assert.Equal(t, "from-file", os.Getenv("TRACKJOB_TEST_VALUE"))
}
