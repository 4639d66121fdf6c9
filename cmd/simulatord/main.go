package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc/credentials"

	"github.com/bibbank/mortgage-simulator/internal/application/usecase"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/cache"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/config"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/kafka"
	pgRepo "github.com/bibbank/mortgage-simulator/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/telemetry"
	grpcPresentation "github.com/bibbank/mortgage-simulator/internal/presentation/grpc"
	"github.com/bibbank/mortgage-simulator/internal/presentation/rest"
	"github.com/bibbank/mortgage-simulator/pkg/auth"
	pkgkafka "github.com/bibbank/mortgage-simulator/pkg/kafka"
	"github.com/bibbank/mortgage-simulator/pkg/observability"
	pkgpostgres "github.com/bibbank/mortgage-simulator/pkg/postgres"
	"github.com/bibbank/mortgage-simulator/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("mortgage-simulator exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Telemetry.LogLevel,
		Format:      cfg.Telemetry.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting mortgage-simulator",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	recorder, err := telemetry.NewSimulationMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("init simulation metrics: %w", err)
	}

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns), //nolint:gosec // small configured value
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	dbCancel()
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.DB.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Infrastructure adapters.
	repo := pgRepo.NewSimulationRepo(pool)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		ClientID:      cfg.ServiceName,
		Brokers:       cfg.Kafka.Brokers,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
		TLS:           cfg.Kafka.TLS,
	})
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }() //nolint:errcheck // flushes pending writes
	publisher := kafka.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	checks := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	var resultCache port.ResultCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }() //nolint:errcheck // shutdown
		resultCache = cache.NewRedisResultCache(client)
		checks["redis"] = func(ctx context.Context) error { return redisPing(ctx, client) }
		logger.Info("using redis result cache", "addr", cfg.Redis.Addr)
	} else {
		resultCache = cache.NewMemoryResultCache(cfg.Redis.MemoryCapacity)
		logger.Info("using in-memory result cache", "capacity", cfg.Redis.MemoryCapacity)
	}

	// Use cases.
	calculator := service.NewMortgageCalculator()
	runUC := usecase.NewRunSimulationUseCase(repo, publisher, resultCache, recorder, calculator, logger, cfg.Redis.TTL)
	getUC := usecase.NewGetSimulationUseCase(repo)
	listUC := usecase.NewListSimulationsUseCase(repo)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return err
	}

	// gRPC server.
	var grpcCreds credentials.TransportCredentials
	if cfg.TLS.Enabled() {
		if grpcCreds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.CAFile); err != nil {
			return err
		}
	}
	grpcServer := grpcPresentation.NewServer(
		grpcPresentation.NewSimulatorHandler(runUC, getUC, listUC, logger),
		logger, jwtSvc,
		grpcPresentation.ServerOptions{
			Creds:       grpcCreds,
			ServiceName: cfg.ServiceName,
			Reflection:  cfg.GRPCReflection,
		},
	)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, cfg.ServiceName, checks).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	rest.NewSimulationHandler(runUC, getUC, listUC, logger).RegisterRoutes(mux, func(next http.Handler) http.Handler {
		return auth.HTTPMiddleware(jwtSvc, next)
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           otelhttp.NewHandler(mux, "http"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		if httpServer.TLSConfig, err = tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile, ""); err != nil {
			return err
		}
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort, "tls", cfg.TLS.Enabled())
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("mortgage-simulator stopped")
	return serveErr
}

func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	switch {
	case cfg.PublicKeyPEM != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKeyPEM
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}

	svc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize JWT service: %w", err)
	}
	return svc, nil
}

func redisPing(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
