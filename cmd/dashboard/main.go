// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tool-dashboard/internal/common/audit"
	awsclient "tool-dashboard/internal/common/aws"
	"tool-dashboard/internal/common/config"
	"tool-dashboard/internal/common/container"
	"tool-dashboard/internal/common/database"
	"tool-dashboard/internal/common/logger"
	"tool-dashboard/internal/common/observability"
	"tool-dashboard/internal/common/secrets"
	"tool-dashboard/internal/router"
	"tool-dashboard/internal/server"
	"tool-dashboard/internal/tools"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

const (
	storeAttempts   = 5
	storeRetryDelay = 2 * time.Second
)

// readyCheck pings every store an audit sink writes to.
type readyCheck func(ctx context.Context) error

type store interface {
	Ping(ctx context.Context) error
	Close() error
}

// connectStore pings an opened store with backoff and closes it when it never
// answers. The store is opened once; only the ping is retried.
func connectStore(ctx context.Context, s store, attempts int, delay time.Duration, log *zap.Logger, name string) error {
	err := retryWithBackoff(func() error {
		return s.Ping(ctx)
	}, attempts, delay, log, name)
	if err != nil {
		_ = s.Close()
	}
	return err
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, observability.Options{
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Secrets and AWS clients ---
	toolOpts := tools.Options{
		AppConfig: cfg,
		Logger:    log,
		Runner:    container.NewCLIRunner(cfg.Integrations.Container.Binary),
	}

	needsSES := cfg.Integrations.SMTP.Provider == "ses"
	needsSNS := cfg.Integrations.SMS.Provider == "sns"

	switch cfg.Secrets.Provider {
	case "aws":
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Secrets.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		toolOpts.Secrets = secrets.NewAWSProvider(awsclient.NewSecretsManagerClient(awsCfg), cfg.Secrets.AWSSecretID)
		zapLog.Info("Secrets resolved from AWS Secrets Manager", zap.String("secretId", cfg.Secrets.AWSSecretID))
	default:
		toolOpts.Secrets = secrets.NewEnvProvider(cfg.Secrets.EnvPrefix)
		zapLog.Info("Secrets resolved from environment", zap.String("prefix", cfg.Secrets.EnvPrefix))
	}

	if needsSES || needsSNS {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		if needsSES {
			toolOpts.SES = awsclient.NewSESClient(awsCfg)
		}
		if needsSNS {
			toolOpts.SNS = awsclient.NewSNSClient(awsCfg)
		}
	}

	// --- Audit sinks ---
	sinks, history, checks, closers := initAudit(ctx, cfg, zapLog)
	defer func() {
		for _, c := range closers {
			_ = c()
		}
	}()
	recorder := audit.NewRecorder(log, sinks...)
	zapLog.Info("Audit sinks configured", zap.Strings("sinks", recorder.Sinks()))

	// --- Tools ---
	built, failed := tools.Build(toolOpts)
	for name, err := range failed {
		zapLog.Error("tool unavailable", zap.String("tool", name), zap.Error(err))
	}

	rt, err := router.New(built, router.Options{
		Logger:        log,
		Recorder:      recorder,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("router setup failed", zap.Error(err))
	}
	zapLog.Info("Tools registered", zap.Int("count", len(built)), zap.Int("unavailable", len(failed)))

	srv, err := server.New(rt, server.Options{
		Logger:  log,
		History: history,
		Version: cfg.App.Version,
		Ready: func(ctx context.Context) error {
			for _, check := range checks {
				if err := check(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if err != nil {
		zapLog.Fatal("server setup failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Dashboard listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	zapLog.Info("Dashboard stopped gracefully")
}

// initAudit connects every enabled sink. A store that stays unreachable after
// retries is logged and skipped; submissions never depend on it.
func initAudit(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) ([]audit.Sink, audit.HistoryReader, []readyCheck, []func() error) {
	var (
		sinks   []audit.Sink
		history audit.HistoryReader
		checks  []readyCheck
		closers []func() error
	)
	if !cfg.Audit.Enabled {
		return nil, nil, nil, nil
	}

	if cfg.Audit.Redis.Enabled {
		redis := database.NewRedis(cfg.Audit.Redis.RedisConfig)
		err := connectStore(ctx, redis, storeAttempts, storeRetryDelay, zapLog, "Redis connection")
		if err != nil {
			zapLog.Error("redis audit sink disabled", zap.Error(err))
		} else {
			sink := audit.NewRedisSink(redis.Client, cfg.Audit.Redis.Key, cfg.Audit.Redis.MaxEntries)
			sinks = append(sinks, sink)
			history = sink
			checks = append(checks, redis.Ping)
			closers = append(closers, redis.Close)
			zapLog.Info("Redis connected successfully")
		}
	}

	if cfg.Audit.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Audit.Postgres.PostgresConfig)
		if err == nil {
			err = connectStore(ctx, pg, storeAttempts, storeRetryDelay, zapLog, "PostgreSQL connection")
			if err == nil {
				var sink *audit.PostgresSink
				sink, err = audit.NewPostgresSink(pg.DB, cfg.Audit.Postgres.Table)
				if err == nil {
					err = sink.EnsureSchema(ctx)
				}
				if err == nil {
					sinks = append(sinks, sink)
					checks = append(checks, pg.Ping)
					closers = append(closers, pg.Close)
					zapLog.Info("PostgreSQL connected successfully")
				} else {
					_ = pg.Close()
				}
			}
		}
		if err != nil {
			zapLog.Error("postgres audit sink disabled", zap.Error(err))
		}
	}

	if cfg.Audit.Elasticsearch.Enabled {
		es, err := database.NewElasticsearch(cfg.Audit.Elasticsearch.ElasticsearchConfig)
		if err == nil {
			err = retryWithBackoff(func() error {
				return es.Ping(ctx)
			}, storeAttempts, storeRetryDelay, zapLog, "Elasticsearch connection")
		}
		if err != nil {
			zapLog.Error("elasticsearch audit sink disabled", zap.Error(err))
		} else {
			sinks = append(sinks, audit.NewElasticsearchSink(es.Client, cfg.Audit.Elasticsearch.Index))
			checks = append(checks, es.Ping)
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	return sinks, history, checks, closers
}
