package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"uvci/internal/platform/config"
	"uvci/internal/platform/httpserver"
	"uvci/internal/platform/kafka"
	"uvci/internal/platform/logger"
	"uvci/internal/platform/metrics"
	"uvci/internal/platform/middleware"
	"uvci/internal/platform/postgres"
	"uvci/internal/platform/redis"
	"uvci/internal/uvci/cache"
	"uvci/internal/uvci/handler"
	"uvci/internal/uvci/publisher"
	"uvci/internal/uvci/service"
	"uvci/internal/uvci/store"
	"uvci/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Parsing lives in internal/uvci.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("uvci server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	checks := map[string]httpserver.HealthChecker{}
	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithConcurrency(cfg.BatchConcurrency),
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient
		breaker := circuit.New("redis", circuit.WithCooldown(cfg.Redis.BreakerCooldown))
		opts = append(opts, service.WithCache(cache.NewGuarded(cache.NewRedisCache(redisClient.Client, cfg.Redis.CacheTTL), breaker)))
		log.Info("record cache: redis", "ttl", cfg.Redis.CacheTTL)
	} else {
		opts = append(opts, service.WithCache(cache.NewInMemoryCache(cfg.Redis.CacheTTL)))
		log.Info("record cache: in-memory", "ttl", cfg.Redis.CacheTTL)
	}

	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if pool != nil {
		defer pool.Close()
		checks["postgres"] = pool
		inspections := store.NewPostgres(pool.Pool)
		if err := inspections.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, service.WithStore(inspections))
		log.Info("inspection store: postgres")
	} else {
		log.Info("inspection store: in-memory")
	}

	kafkaClient, err := kafka.New(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	if kafkaClient != nil {
		defer kafkaClient.Close()
		if err := kafkaClient.EnsureTopic(ctx); err != nil {
			return err
		}
		checks["kafka"] = kafkaClient
		opts = append(opts, service.WithPublisher(publisher.NewKafkaPublisher(kafkaClient.Client, kafkaClient.Topic())))
		log.Info("inspection events: kafka", "topic", kafkaClient.Topic(), "brokers", cfg.Kafka.Brokers)
	} else {
		opts = append(opts, service.WithPublisher(publisher.Noop{}))
		log.Info("inspection events: disabled")
	}

	svc := service.New(opts...)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.AccessLog(log))
	handler.New(svc, log, cfg.MaxBatchSize).Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/healthz", httpserver.HealthHandler(checks))

	g, gctx := errgroup.WithContext(ctx)
	httpserver.Run(gctx, g, httpserver.New(cfg.Addr, r), log)

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("uvci server stopped")
	return nil
}
