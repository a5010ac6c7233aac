// Package config defines the configuration structures for InfringeScope.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig holds Redis connection parameters.  Redis is optional and only
// guards the seed run across replicas.
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	SeedLockTTL time.Duration `mapstructure:"seed_lock_ttl"`
}

// KafkaConfig holds the analysis event producer settings.
type KafkaConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

// LLMConfig selects and tunes the completion provider.
type LLMConfig struct {
	Provider       string            `mapstructure:"provider"` // "openai" | "anthropic"
	APIKey         string            `mapstructure:"api_key"`
	BaseURL        string            `mapstructure:"base_url"`
	Model          string            `mapstructure:"model"`
	MaxTokens      int               `mapstructure:"max_tokens"`
	Temperature    float64           `mapstructure:"temperature"`
	Timeout        time.Duration     `mapstructure:"timeout"` // 0 = transport default
	DefaultHeaders map[string]string `mapstructure:"default_headers"`
	IncludeSchema  bool              `mapstructure:"include_schema"`
}

// SeedConfig controls the startup fixture load.
type SeedConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	DataDir           string `mapstructure:"data_dir"`
	CompaniesFile     string `mapstructure:"companies_file"`
	PatentsFile       string `mapstructure:"patents_file"`
	AnalysesFile      string `mapstructure:"analyses_file"`
	Guard             string `mapstructure:"guard"` // "per_source" | "bootstrap_user" | "none"
	SuperuserEmail    string `mapstructure:"superuser_email"`
	SuperuserPassword string `mapstructure:"superuser_password"`
}

// LogConfig mirrors logging.LogConfig so this package stays free of
// infrastructure imports.
type LogConfig struct {
	Level  string   `mapstructure:"level"`
	Format string   `mapstructure:"format"`
	Output []string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Seed guard modes.
const (
	SeedGuardPerSource     = "per_source"
	SeedGuardBootstrapUser = "bootstrap_user"
	SeedGuardNone          = "none"
)

// LLM providers.
const (
	LLMProviderOpenAI    = "openai"
	LLMProviderAnthropic = "anthropic"
)

var (
	validServerModes = map[string]bool{"debug": true, "release": true, "test": true}
	validLogLevels   = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats  = map[string]bool{"json": true, "console": true}
	validSeedGuards  = map[string]bool{SeedGuardPerSource: true, SeedGuardBootstrapUser: true, SeedGuardNone: true}
	validProviders   = map[string]bool{LLMProviderOpenAI: true, LLMProviderAnthropic: true}
)

// Validate checks cross-field and range constraints.  It returns the first
// violation found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if !validServerModes[c.Server.Mode] {
		return fmt.Errorf("config: server.mode %q must be one of debug, release, test", c.Server.Mode)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: server.shutdown_timeout must not be negative")
	}

	if strings.TrimSpace(c.Database.Host) == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("config: database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		return fmt.Errorf("config: database.db_name is required")
	}
	if c.Database.MaxIdleConns > c.Database.MaxConns {
		return fmt.Errorf("config: database.max_idle_conns %d exceeds database.max_conns %d",
			c.Database.MaxIdleConns, c.Database.MaxConns)
	}

	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: kafka.brokers must not be empty when kafka.enabled is true")
		}
		if strings.TrimSpace(c.Kafka.Topic) == "" {
			return fmt.Errorf("config: kafka.topic is required when kafka.enabled is true")
		}
	}

	if !validProviders[c.LLM.Provider] {
		return fmt.Errorf("config: llm.provider %q must be one of openai, anthropic", c.LLM.Provider)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("config: llm.model is required")
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("config: llm.max_tokens must not be negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config: llm.temperature %.2f is out of range [0, 2]", c.LLM.Temperature)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("config: llm.timeout must not be negative")
	}

	if !validSeedGuards[c.Seed.Guard] {
		return fmt.Errorf("config: seed.guard %q must be one of per_source, bootstrap_user, none", c.Seed.Guard)
	}
	if c.Seed.SuperuserEmail != "" && c.Seed.SuperuserPassword == "" {
		return fmt.Errorf("config: seed.superuser_password is required when seed.superuser_email is set")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("config: log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}
	return nil
}

// Address renders host:port/db for log lines; credentials are never included.
func (d DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d/%s", d.Host, d.Port, d.DBName)
}

//Personal.AI order the ending
