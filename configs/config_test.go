package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "http://localhost:8080", cfg.Speech.URL)
	assert.Equal(t, "database", cfg.Swipe.Store)
	assert.Equal(t, 100.0, cfg.Swipe.Threshold)
	assert.Equal(t, 300*time.Millisecond, cfg.Swipe.Animation)
	assert.Equal(t, "gemini", cfg.AI.Provider)
}

func TestLoadLegacyEnvironment(t *testing.T) {
	t.Setenv("FASTAPI_URL", "http://speech.internal:9000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SILVERGEN_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://speech.internal:9000", cfg.Speech.URL)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
database:
  driver: postgres
  host: db
  dbname: silvergen
swipe:
  animation: 150ms
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 150*time.Millisecond, cfg.Swipe.Animation)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	bad := *cfg
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Swipe.Store = "supabase"
	assert.Error(t, bad.Validate(), "supabase store needs url and key")

	bad.Supabase.URL = "https://example.supabase.co"
	bad.Supabase.Key = "service-role"
	assert.NoError(t, bad.Validate())
}

func TestGeminiEnvIgnoredForOtherProviders(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GEMINI_API_URL", "https://gemini.example")
	t.Setenv("SILVERGEN_AI_PROVIDER", "openai")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.AI.URL)

	t.Setenv("SILVERGEN_AI_API_KEY", "openai-key")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "openai-key", cfg.AI.APIKey)
}
