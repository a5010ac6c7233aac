package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestConfig_Validate_DefaultsAreValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Violations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"server mode", func(c *Config) { c.Server.Mode = "production" }, "server.mode"},
		{"negative shutdown", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }, "server.shutdown_timeout"},
		{"db host", func(c *Config) { c.Database.Host = " " }, "database.host"},
		{"db port", func(c *Config) { c.Database.Port = -1 }, "database.port"},
		{"db name", func(c *Config) { c.Database.DBName = "" }, "database.db_name"},
		{"idle above max", func(c *Config) { c.Database.MaxIdleConns = 100 }, "database.max_idle_conns"},
		{"redis addr", func(c *Config) { c.Redis.Enabled = true; c.Redis.Addr = "" }, "redis.addr"},
		{"kafka brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"kafka topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }, "kafka.topic"},
		{"llm provider", func(c *Config) { c.LLM.Provider = "cohere" }, "llm.provider"},
		{"llm model", func(c *Config) { c.LLM.Model = "" }, "llm.model"},
		{"llm temperature", func(c *Config) { c.LLM.Temperature = 3 }, "llm.temperature"},
		{"llm timeout", func(c *Config) { c.LLM.Timeout = -time.Second }, "llm.timeout"},
		{"seed guard", func(c *Config) { c.Seed.Guard = "always" }, "seed.guard"},
		{"superuser password", func(c *Config) { c.Seed.SuperuserEmail = "admin@example.com" }, "seed.superuser_password"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, "metrics.path"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestConfig_Validate_DisabledSectionsAreNotChecked(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Redis.Addr = ""
	cfg.Kafka.Brokers = nil
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseConfig_Address(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, DBName: "app", Password: "secret"}
	assert.Equal(t, "db:5433/app", d.Address())
}

//Personal.AI order the ending
