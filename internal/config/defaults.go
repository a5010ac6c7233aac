package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultServerPort            = 8000
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 30 * time.Second
	DefaultServerWriteTimeout    = 120 * time.Second
	DefaultServerShutdownTimeout = 15 * time.Second

	DefaultDBHost            = "localhost"
	DefaultDBPort            = 5432
	DefaultDBUser            = "postgres"
	DefaultDBName            = "app"
	DefaultDBSSLMode         = "disable"
	DefaultDBMaxConns        = 25
	DefaultDBMaxIdleConns    = 5
	DefaultDBConnMaxLifetime = 30 * time.Minute

	DefaultRedisAddr        = "localhost:6379"
	DefaultRedisSeedLockTTL = 30 * time.Second

	DefaultKafkaBroker   = "localhost:9092"
	DefaultKafkaTopic    = "infringement.analysis.completed"
	DefaultKafkaClientID = "infringescope"

	DefaultLLMProvider  = LLMProviderOpenAI
	DefaultLLMModel     = "gpt-3.5-turbo"
	DefaultLLMMaxTokens = 2048

	DefaultSeedDataDir       = "data"
	DefaultSeedCompaniesFile = "company_products.json"
	DefaultSeedPatentsFile   = "patents.json"
	DefaultSeedAnalysesFile  = "infringement_analysis.json"
	DefaultSeedGuard         = SeedGuardPerSource

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "infringescope"
	DefaultMetricsPath      = "/metrics"
)

// registerDefaults declares every key on v.  Viper's Unmarshal only consults
// AutomaticEnv for keys it already knows, so a key without a default would
// silently ignore its INFRINGESCOPE_* variable.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("database.host", DefaultDBHost)
	v.SetDefault("database.port", DefaultDBPort)
	v.SetDefault("database.user", DefaultDBUser)
	v.SetDefault("database.password", "")
	v.SetDefault("database.db_name", DefaultDBName)
	v.SetDefault("database.ssl_mode", DefaultDBSSLMode)
	v.SetDefault("database.max_conns", DefaultDBMaxConns)
	v.SetDefault("database.max_idle_conns", DefaultDBMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", DefaultDBConnMaxLifetime)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.seed_lock_ttl", DefaultRedisSeedLockTTL)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.topic", DefaultKafkaTopic)
	v.SetDefault("kafka.client_id", DefaultKafkaClientID)

	v.SetDefault("llm.provider", DefaultLLMProvider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("llm.max_tokens", DefaultLLMMaxTokens)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", time.Duration(0))
	v.SetDefault("llm.default_headers", map[string]string{})
	v.SetDefault("llm.include_schema", true)

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.data_dir", DefaultSeedDataDir)
	v.SetDefault("seed.companies_file", DefaultSeedCompaniesFile)
	v.SetDefault("seed.patents_file", DefaultSeedPatentsFile)
	v.SetDefault("seed.analyses_file", DefaultSeedAnalysesFile)
	v.SetDefault("seed.guard", DefaultSeedGuard)
	v.SetDefault("seed.superuser_email", "")
	v.SetDefault("seed.superuser_password", "")

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output", []string{"stdout"})

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)
}

// ApplyDefaults fills zero-value fields in cfg.  It covers Config values
// built in code rather than through a loader, where registerDefaults never
// ran.  Booleans are left alone because false is a legitimate setting.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.User == "" {
		cfg.Database.User = DefaultDBUser
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = DefaultDBSSLMode
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = DefaultDBMaxConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = DefaultDBMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = DefaultDBConnMaxLifetime
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.SeedLockTTL == 0 {
		cfg.Redis.SeedLockTTL = DefaultRedisSeedLockTTL
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
	if cfg.Kafka.ClientID == "" {
		cfg.Kafka.ClientID = DefaultKafkaClientID
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = DefaultLLMMaxTokens
	}

	if cfg.Seed.DataDir == "" {
		cfg.Seed.DataDir = DefaultSeedDataDir
	}
	if cfg.Seed.CompaniesFile == "" {
		cfg.Seed.CompaniesFile = DefaultSeedCompaniesFile
	}
	if cfg.Seed.PatentsFile == "" {
		cfg.Seed.PatentsFile = DefaultSeedPatentsFile
	}
	if cfg.Seed.AnalysesFile == "" {
		cfg.Seed.AnalysesFile = DefaultSeedAnalysesFile
	}
	if cfg.Seed.Guard == "" {
		cfg.Seed.Guard = DefaultSeedGuard
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if len(cfg.Log.Output) == 0 {
		cfg.Log.Output = []string{"stdout"}
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

//Personal.AI order the ending
