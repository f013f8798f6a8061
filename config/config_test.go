package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "STORE_DRIVER=postgres\nDATABASE_URL=postgres://localhost/home\nAUTH_MODE=jwt\nSUPABASE_JWT_SECRET=s3cret\nENVIRONMENT=production\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"STORE_DRIVER", "DATABASE_URL", "AUTH_MODE", "SUPABASE_JWT_SECRET", "ENVIRONMENT"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "postgres://localhost/home", cfg.DatabaseURL)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	cfg := Config{StoreDriver: DriverREST, AuthMode: AuthRemote}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL and SUPABASE_KEY")

	cfg = Config{StoreDriver: "mongo", AuthMode: "basic"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown STORE_DRIVER "mongo"`)
	assert.Contains(t, err.Error(), `unknown AUTH_MODE "basic"`)

	cfg = Config{StoreDriver: DriverREST, AuthMode: AuthRemote, SupabaseURL: "https://x.supabase.co", SupabaseKey: "k"}
	assert.NoError(t, cfg.Validate())
}

func TestNormalizeOrigins(t *testing.T) {
	got := normalizeOrigins([]string{`["http://a.test"`, ` "http://b.test"]`, ""})
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, got)
}
