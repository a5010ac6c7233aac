// Package app assembles one InfringeScope process from its configuration:
// storage, optional Redis and Kafka, the LLM client, the application
// services and the HTTP server.
package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/turtacn/InfringeScope/internal/application/analyzer"
	"github.com/turtacn/InfringeScope/internal/application/catalog"
	"github.com/turtacn/InfringeScope/internal/application/seed"
	"github.com/turtacn/InfringeScope/internal/config"
	"github.com/turtacn/InfringeScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/InfringeScope/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/InfringeScope/internal/infrastructure/database/redis"
	"github.com/turtacn/InfringeScope/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/internal/intelligence/llm"
	"github.com/turtacn/InfringeScope/internal/intelligence/prompt"
	httpapi "github.com/turtacn/InfringeScope/internal/interfaces/http"
	"github.com/turtacn/InfringeScope/internal/interfaces/http/handlers"
	"github.com/turtacn/InfringeScope/internal/interfaces/http/middleware"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// Options carries what the caller knows and the configuration does not.
type Options struct {
	Version string
	// Logger overrides the logger built from cfg.Log.
	Logger logging.Logger
}

// App owns every long-lived resource of the process.  Build it with New and
// release it with Close.
type App struct {
	cfg     *config.Config
	logger  logging.Logger
	version string

	db        *postgres.Connection
	store     *repositories.Store
	cache     *redis.Client
	producer  *kafka.Producer
	collector prometheus.MetricsCollector
	metrics   *prometheus.AppMetrics

	analyzer analyzer.Service
	catalog  catalog.Service
	seeder   *seed.Loader

	router http.Handler
	server *httpapi.Server
}

// New connects to every configured backend and wires the services.  On
// failure the resources opened so far are released.
func New(cfg *config.Config, opts Options) (a *App, err error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeValidation, "config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = NewLogger(cfg.Log)
		if err != nil {
			return nil, err
		}
	}

	a = &App{cfg: cfg, logger: logger, version: opts.Version}
	defer func() {
		if err != nil {
			_ = a.Close()
			a = nil
		}
	}()

	if err = a.initMetrics(); err != nil {
		return a, err
	}
	if err = a.initDatabase(); err != nil {
		return a, err
	}
	if err = a.initRedis(); err != nil {
		return a, err
	}
	if err = a.initKafka(); err != nil {
		return a, err
	}
	if err = a.initServices(); err != nil {
		return a, err
	}
	a.initHTTP()

	logger.Info("Application initialized",
		logging.String("version", a.version),
		logging.String("llm_provider", cfg.LLM.Provider),
		logging.String("llm_model", cfg.LLM.Model),
		logging.Bool("redis", a.cache != nil),
		logging.Bool("kafka", a.producer != nil),
		logging.Bool("metrics", a.collector != nil),
	)
	return a, nil
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg config.LogConfig) (logging.Logger, error) {
	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Level,
		Format:      cfg.Format,
		OutputPaths: cfg.Output,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build logger")
	}
	return logger, nil
}

// PostgresConfig maps the database section onto the connection settings.
func PostgresConfig(cfg config.DatabaseConfig) postgres.PostgresConfig {
	return postgres.PostgresConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Database:        cfg.DBName,
		Username:        cfg.User,
		Password:        cfg.Password,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}

// OpenDatabase connects to PostgreSQL without building the rest of the
// process.  The migrate command uses it.
func OpenDatabase(cfg config.DatabaseConfig, logger logging.Logger) (*postgres.Connection, error) {
	return postgres.NewConnection(PostgresConfig(cfg), logger)
}

// LLMConfig maps the llm section onto the client settings.
func LLMConfig(cfg config.LLMConfig) llm.Config {
	return llm.Config{
		Provider:       cfg.Provider,
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
		Temperature:    cfg.Temperature,
		Timeout:        cfg.Timeout,
		DefaultHeaders: cfg.DefaultHeaders,
	}
}

// SeedConfig maps the seed section onto the loader settings.
func SeedConfig(cfg config.SeedConfig) seed.Config {
	return seed.Config{
		DataDir:           cfg.DataDir,
		CompaniesFile:     cfg.CompaniesFile,
		PatentsFile:       cfg.PatentsFile,
		AnalysesFile:      cfg.AnalysesFile,
		Guard:             cfg.Guard,
		SuperuserEmail:    cfg.SuperuserEmail,
		SuperuserPassword: cfg.SuperuserPassword,
	}
}

func (a *App) initMetrics() error {
	if !a.cfg.Metrics.Enabled {
		a.metrics = prometheus.NewNopAppMetrics()
		return nil
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            a.cfg.Metrics.Namespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, a.logger)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create metrics collector")
	}
	a.collector = collector
	a.metrics = prometheus.NewAppMetrics(collector)
	return nil
}

func (a *App) initDatabase() error {
	conn, err := OpenDatabase(a.cfg.Database, a.logger)
	if err != nil {
		return err
	}
	a.db = conn

	if a.cfg.Database.AutoMigrate {
		if err := conn.Migrate(); err != nil {
			return err
		}
	}
	a.store = repositories.NewStore(conn, a.logger)
	return nil
}

func (a *App) initRedis() error {
	if !a.cfg.Redis.Enabled {
		return nil
	}
	client, err := redis.NewClient(&redis.RedisConfig{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}, a.logger)
	if err != nil {
		return err
	}
	a.cache = client
	return nil
}

func (a *App) initKafka() error {
	if !a.cfg.Kafka.Enabled {
		return nil
	}
	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:  a.cfg.Kafka.Brokers,
		ClientID: a.cfg.Kafka.ClientID,
	}, a.logger)
	if err != nil {
		return err
	}
	a.producer = producer
	return nil
}

func (a *App) initServices() error {
	client, err := llm.New(LLMConfig(a.cfg.LLM))
	if err != nil {
		return err
	}
	prompts, err := prompt.NewBuilder(prompt.Options{IncludeSchema: a.cfg.LLM.IncludeSchema})
	if err != nil {
		return err
	}

	deps := analyzer.Deps{
		Store:   a.store,
		LLM:     llm.Instrument(client, a.metrics, a.logger),
		Prompts: prompts,
		Metrics: a.metrics,
		Logger:  a.logger,
	}
	if a.producer != nil {
		deps.Events = kafka.NewAnalysisEventPublisher(a.producer, a.cfg.Kafka.Topic, a.logger)
	}
	if a.analyzer, err = analyzer.NewService(deps); err != nil {
		return err
	}
	a.catalog = catalog.NewService(a.store, a.logger)

	seedOpts := []seed.Option{seed.WithMetrics(a.metrics), seed.WithLogger(a.logger)}
	if a.cache != nil {
		var lockOpts []redis.LockOption
		if a.cfg.Redis.SeedLockTTL > 0 {
			lockOpts = append(lockOpts, redis.WithLockTTL(a.cfg.Redis.SeedLockTTL))
		}
		seedOpts = append(seedOpts, seed.WithLocker(redis.NewMutex(a.cache, redis.SeedLockName, a.logger, lockOpts...)))
	}
	a.seeder = seed.NewLoader(a.store, SeedConfig(a.cfg.Seed), seedOpts...)
	return nil
}

func (a *App) initHTTP() {
	checkers := []handlers.HealthChecker{a.db}
	if a.cache != nil {
		checkers = append(checkers, a.cache)
	}

	a.router = httpapi.NewRouter(httpapi.RouterConfig{
		CompanyHandler:      handlers.NewCompanyHandler(a.catalog),
		PatentHandler:       handlers.NewPatentHandler(a.catalog),
		InfringementHandler: handlers.NewInfringementHandler(a.analyzer, a.catalog),
		UserHandler:         handlers.NewUserHandler(a.catalog),
		HealthHandler:       handlers.NewHealthHandler(a.version, checkers...),
		CORSAllowedOrigins:  a.cfg.Server.CORSAllowedOrigins,
		Logging:             middleware.DefaultLoggingConfig(a.cfg.Metrics.Path),
		Logger:              a.logger,
		MetricsCollector:    a.collector,
		Metrics:             a.metrics,
		MetricsPath:         a.cfg.Metrics.Path,
		Mode:                a.cfg.Server.Mode,
	})

	a.server = httpapi.NewServer(httpapi.ServerConfig{
		Port:            a.cfg.Server.Port,
		ReadTimeout:     a.cfg.Server.ReadTimeout,
		WriteTimeout:    a.cfg.Server.WriteTimeout,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	}, a.router, a.logger)
}

// Logger is the process logger.
func (a *App) Logger() logging.Logger { return a.logger }

// Handler is the HTTP route tree.
func (a *App) Handler() http.Handler { return a.router }

// Seed loads the configured fixtures once.
func (a *App) Seed(ctx context.Context) (*seed.Report, error) {
	report, err := a.seeder.Run(ctx)
	if err != nil {
		return report, err
	}
	LogSeedReport(a.logger, report)
	return report, nil
}

// LogSeedReport writes one line per source.
func LogSeedReport(logger logging.Logger, report *seed.Report) {
	if report == nil {
		return
	}
	if report.LockNotAcquired {
		logger.Info("Seed skipped, another replica holds the lock")
		return
	}
	for _, s := range report.Sources {
		fields := []logging.Field{
			logging.String("source", string(s.Source)),
			logging.String("status", string(s.Status)),
			logging.Int("inserted", s.Inserted),
			logging.Int("duplicates", s.Duplicates),
			logging.Int("invalid", s.Invalid),
		}
		if s.Status == seed.StatusFailed {
			logger.Error("Seed source failed", append(fields, logging.String("error", s.Error))...)
			continue
		}
		logger.Info("Seed source processed", fields...)
	}
}

// Run seeds when enabled, then serves HTTP until ctx is cancelled or the
// listener fails.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Seed.Enabled {
		if _, err := a.Seed(ctx); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.cfg.Server.Port))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to listen")
	}
	return a.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is cancelled, then shuts down
// gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.server.Stop(stopCtx); err != nil {
		return err
	}
	return <-errCh
}

// WatchLogLevel applies log.level edits of the file at path without a
// restart.  Other settings need one.
func WatchLogLevel(path string, logger logging.Logger) {
	err := config.Watch(path,
		func(cfg *config.Config) {
			if logging.SetLevel(logger, cfg.Log.Level) {
				logger.Info("Log level changed", logging.String("level", cfg.Log.Level))
			}
		},
		func(err error) {
			logger.Warn("Ignoring invalid config change", logging.Err(err))
		},
	)
	if err != nil {
		logger.Warn("Config watch disabled", logging.String("path", path), logging.Err(err))
	}
}

// Close releases the producer, Redis and PostgreSQL in that order.  It
// returns the first error and logs the rest.
func (a *App) Close() error {
	var first error
	record := func(name string, err error) {
		if err == nil {
			return
		}
		a.logger.Error("Failed to close resource", logging.String("resource", name), logging.Err(err))
		if first == nil {
			first = err
		}
	}

	if a.producer != nil {
		record("kafka", a.producer.Close())
		a.producer = nil
	}
	if a.cache != nil {
		record("redis", a.cache.Close())
		a.cache = nil
	}
	if a.db != nil {
		record("postgres", a.db.Close())
		a.db = nil
	}
	_ = a.logger.Sync()
	return first
}

//Personal.AI order the ending
