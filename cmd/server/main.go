package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"compute-service/observability"
	"compute-service/service"
	"compute-service/service/application"
	"compute-service/service/domain"
	"compute-service/service/infra"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		slog.Error("logger config error", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OtelExporter, os.Stdout)
	if err != nil {
		logger.Error("tracing init error", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	counters := infra.NewAtomicCounters()
	registry, metrics := infra.NewRegistry(counters, start)

	var hits domain.HitSink
	if cfg.HitsMirror.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.HitsMirror.RedisAddr,
			Password:     cfg.HitsMirror.RedisPassword,
			DB:           cfg.HitsMirror.RedisDB,
			DialTimeout:  time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			logger.Error("hits mirror redis ping error", "addr", cfg.HitsMirror.RedisAddr, "error", err)
			os.Exit(1)
		}

		hits = infra.NewLoggingHitSink(
			infra.NewRedisHitSink(
				rdb,
				infra.WithHitPrefix(cfg.HitsMirror.Prefix),
				infra.WithHitTTL(cfg.HitsMirror.TTL),
				infra.WithHitBucket(cfg.HitsMirror.Bucket),
			),
			logger,
			cfg.HitsMirror.LogEvery,
		)
	}

	srv := service.NewServer(service.Options{
		Counters:           counters,
		Start:              start,
		Engine:             application.ComputeEngine{},
		Hits:               hits,
		Registry:           registry,
		Metrics:            metrics,
		RequestTimeout:     cfg.RequestTimeout,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Compression:        cfg.Compression,
		TrustXForwardedFor: cfg.TrustXFF,
		Logger:             logger,
	})

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error("listen error", "addr", cfg.ListenAddr, "error", err)
		os.Exit(1)
	}

	logger.Info("listening", "addr", "http://"+cfg.ListenAddr)
	logger.Info("config",
		"request_timeout", cfg.RequestTimeout.String(),
		"compression", cfg.Compression,
		"cors_origins", cfg.CORSAllowedOrigins,
		"otel_exporter", cfg.OtelExporter,
		"hits_mirror", cfg.HitsMirror.Enabled,
	)

	err = serve(ctx, httpSrv, ln, cfg.ShutdownTimeout, logger)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("tracing shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
