package config

import (
	"errors"
	"fmt"
	"time"
)

// maxCacheTTL bounds how long a resolved gist revision may be reused.
const maxCacheTTL = time.Minute

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	switch c.Storage.Backend {
	case "postgres":
		if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
			return errors.New("postgres credentials are required")
		}
		if c.Postgres.Host == "" {
			return errors.New("postgres.host is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.GitHub.APIHost == "" {
		return errors.New("github.api_host is required")
	}
	if c.Cache.TTL < 0 || c.Cache.TTL > maxCacheTTL {
		return fmt.Errorf("cache.ttl must be within [0, %s]", maxCacheTTL)
	}
	if c.Workflow.MaxParallelLookups < 1 {
		return errors.New("workflow.max_parallel_lookups must be positive")
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects the acceptance ledger backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// GitHubConfig describes the gist store and the GitHub REST API.
type GitHubConfig struct {
	APIHost       string        `mapstructure:"api_host"`
	APIPort       int           `mapstructure:"api_port"`
	APIURL        string        `mapstructure:"api_url"`
	UserAgent     string        `mapstructure:"user_agent"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	RateLimit     float64       `mapstructure:"rate_limit"`
	RateBurst     int           `mapstructure:"rate_burst"`
	StatusContext string        `mapstructure:"status_context"`
	// StatusTargetURL is linked from commit statuses; optional.
	StatusTargetURL string `mapstructure:"status_target_url"`
}

// GistBaseURL returns scheme://host:port of the gist API.
func (g GitHubConfig) GistBaseURL() string {
	return fmt.Sprintf("https://%s:%d", g.APIHost, g.APIPort)
}

// CacheConfig controls the optional redis revision cache. TTL 0 disables it.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether resolved revisions should be cached.
func (c CacheConfig) Enabled() bool {
	return c.TTL > 0 && c.RedisAddr != ""
}

// WorkflowConfig tunes check/sign orchestration.
type WorkflowConfig struct {
	MaxParallelLookups int `mapstructure:"max_parallel_lookups"`
}
