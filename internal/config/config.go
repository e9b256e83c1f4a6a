package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/yakoovad/club-api/internal/translate"
)

const (
	envPrefix     = "CLUBS"
	envConfigFile = "CLUBS_CONFIG"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	ProviderLambda   = "lambda"
	ProviderDisabled = "disabled"

	AuthCookie   = "cookie"
	AuthGateway  = "gateway"
	AuthDisabled = "disabled"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Store     StoreConfig     `mapstructure:"store"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Translate TranslateConfig `mapstructure:"translate"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Cognito   CognitoConfig   `mapstructure:"cognito"`
	Warmup    WarmupConfig    `mapstructure:"warmup"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `mapstructure:"endpoint"`
}

type StoreConfig struct {
	Backend       string `mapstructure:"backend"`
	ClubsTable    string `mapstructure:"clubs_table"`
	PlayersTable  string `mapstructure:"players_table"`
	PositionIndex string `mapstructure:"position_index"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TranslateConfig struct {
	Provider         string `mapstructure:"provider"`
	FunctionName     string `mapstructure:"function_name"`
	SourceLanguage   string `mapstructure:"source_language"`
	MaxCacheAttempts int    `mapstructure:"max_cache_attempts"`
}

type AuthConfig struct {
	Mode       string `mapstructure:"mode"`
	Secret     string `mapstructure:"secret"`
	CookieName string `mapstructure:"cookie_name"`
}

type CognitoConfig struct {
	ClientID string `mapstructure:"client_id"`
}

type WarmupConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaults = map[string]any{
	"server.address":               ":8080",
	"server.cors_origins":          []string{"*"},
	"log.level":                    "info",
	"log.development":              false,
	"aws.region":                   "",
	"aws.endpoint":                 "",
	"store.backend":                BackendDynamoDB,
	"store.clubs_table":            "Clubs",
	"store.players_table":          "ClubPlayers",
	"store.position_index":         "positionIx",
	"postgres.dsn":                 "",
	"translate.provider":           ProviderLambda,
	"translate.function_name":      "translation-manager",
	"translate.source_language":    "en",
	"translate.max_cache_attempts": 3,
	"auth.mode":                    AuthGateway,
	"auth.secret":                  "",
	"auth.cookie_name":             "token",
	"cognito.client_id":            "",
	"warmup.enabled":               true,
}

// aliases are the environment names used by the existing deployment.
var aliases = map[string]string{
	"store.clubs_table":   "TABLE_NAME",
	"store.players_table": "PLAYERS_TABLE_NAME",
	"aws.region":          "REGION",
	"cognito.client_id":   "CLIENT_ID",
}

// Load reads defaults, then the optional config file, then the environment.
// An empty path falls back to $CLUBS_CONFIG; with neither set no file is read.
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range aliases {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), alias); err != nil {
			return nil, errors.Wrapf(err, "failed to bind %s", key)
		}
	}

	if path == "" {
		path = os.Getenv(envConfigFile)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendDynamoDB:
		if c.Store.ClubsTable == "" || c.Store.PlayersTable == "" || c.Store.PositionIndex == "" {
			return errors.Wrap(ErrInvalidConfig, "dynamodb backend needs clubs_table, players_table and position_index")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.Wrap(ErrInvalidConfig, "postgres backend needs postgres.dsn")
		}
	case BackendMemory:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	switch c.Translate.Provider {
	case ProviderLambda:
		if c.Translate.FunctionName == "" {
			return errors.Wrap(ErrInvalidConfig, "lambda translation provider needs translate.function_name")
		}
	case ProviderDisabled:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown translation provider %q", c.Translate.Provider)
	}

	if !translate.IsSupported(c.Translate.SourceLanguage) {
		return errors.Wrapf(ErrInvalidConfig, "unsupported source language %q", c.Translate.SourceLanguage)
	}
	if c.Translate.MaxCacheAttempts < 1 {
		return errors.Wrap(ErrInvalidConfig, "translate.max_cache_attempts must be at least 1")
	}

	switch c.Auth.Mode {
	case AuthCookie:
		if c.Auth.Secret == "" {
			return errors.Wrap(ErrInvalidConfig, "cookie auth needs auth.secret")
		}
		if c.Auth.CookieName == "" {
			return errors.Wrap(ErrInvalidConfig, "cookie auth needs auth.cookie_name")
		}
	case AuthGateway, AuthDisabled:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown auth mode %q", c.Auth.Mode)
	}

	return nil
}
