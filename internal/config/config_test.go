package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(envConfigFile, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, BackendDynamoDB, cfg.Store.Backend)
	assert.Equal(t, "Clubs", cfg.Store.ClubsTable)
	assert.Equal(t, "ClubPlayers", cfg.Store.PlayersTable)
	assert.Equal(t, "positionIx", cfg.Store.PositionIndex)
	assert.Equal(t, "en", cfg.Translate.SourceLanguage)
	assert.Equal(t, 3, cfg.Translate.MaxCacheAttempts)
	assert.Equal(t, AuthGateway, cfg.Auth.Mode)
	assert.True(t, cfg.Warmup.Enabled)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(envConfigFile, "")
	t.Setenv("CLUBS_STORE_BACKEND", "memory")
	t.Setenv("CLUBS_LOG_LEVEL", "debug")
	t.Setenv("CLUBS_TRANSLATE_MAX_CACHE_ATTEMPTS", "5")
	t.Setenv("TABLE_NAME", "clubs-prod")
	t.Setenv("PLAYERS_TABLE_NAME", "players-prod")
	t.Setenv("REGION", "eu-west-1")
	t.Setenv("CLIENT_ID", "abc123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Translate.MaxCacheAttempts)
	assert.Equal(t, "clubs-prod", cfg.Store.ClubsTable)
	assert.Equal(t, "players-prod", cfg.Store.PlayersTable)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, "abc123", cfg.Cognito.ClientID)
}

func TestLoad_PrefixedNameWinsOverAlias(t *testing.T) {
	t.Setenv(envConfigFile, "")
	t.Setenv("CLUBS_STORE_CLUBS_TABLE", "prefixed")
	t.Setenv("TABLE_NAME", "alias")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Store.ClubsTable)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
  cors_origins: ["https://clubs.example.com"]
store:
  backend: postgres
postgres:
  dsn: postgres://localhost/clubs
auth:
  mode: cookie
  secret: s3cret
translate:
  provider: disabled
`), 0o644))

	t.Setenv("CLUBS_SERVER_ADDRESS", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, []string{"https://clubs.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://localhost/clubs", cfg.Postgres.DSN)
	assert.Equal(t, AuthCookie, cfg.Auth.Mode)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Equal(t, ProviderDisabled, cfg.Translate.Provider)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store:     StoreConfig{Backend: BackendDynamoDB, ClubsTable: "Clubs", PlayersTable: "ClubPlayers", PositionIndex: "positionIx"},
			Translate: TranslateConfig{Provider: ProviderLambda, FunctionName: "tm", SourceLanguage: "en", MaxCacheAttempts: 3},
			Auth:      AuthConfig{Mode: AuthGateway, CookieName: "token"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "valid", mutate: func(*Config) {}, ok: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "redis" }},
		{name: "dynamodb without table", mutate: func(c *Config) { c.Store.ClubsTable = "" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Backend = BackendPostgres }},
		{name: "memory backend", mutate: func(c *Config) { c.Store.Backend = BackendMemory }, ok: true},
		{name: "lambda without function", mutate: func(c *Config) { c.Translate.FunctionName = "" }},
		{name: "disabled translation", mutate: func(c *Config) { c.Translate.Provider = ProviderDisabled; c.Translate.FunctionName = "" }, ok: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Translate.Provider = "deepl" }},
		{name: "unsupported source language", mutate: func(c *Config) { c.Translate.SourceLanguage = "xx" }},
		{name: "zero attempts", mutate: func(c *Config) { c.Translate.MaxCacheAttempts = 0 }},
		{name: "cookie without secret", mutate: func(c *Config) { c.Auth.Mode = AuthCookie }},
		{name: "cookie with secret", mutate: func(c *Config) { c.Auth.Mode = AuthCookie; c.Auth.Secret = "s" }, ok: true},
		{name: "unknown auth mode", mutate: func(c *Config) { c.Auth.Mode = "basic" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidConfig), err)
		})
	}
}
