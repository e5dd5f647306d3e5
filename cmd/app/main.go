package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airplanes/api"
	"github.com/Domenick1991/airplanes/config"
	"github.com/Domenick1991/airplanes/internal/bootstrap"
	"github.com/Domenick1991/airplanes/internal/cache"
	"github.com/Domenick1991/airplanes/internal/kafka"
	"github.com/Domenick1991/airplanes/internal/logger"
	"github.com/Domenick1991/airplanes/internal/metrics"
	"github.com/Domenick1991/airplanes/internal/repository"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]api.Check{}

	var repo repository.AirplaneRepository
	if cfg.Database.InMemory() {
		logg.Warn("no database host configured, airplanes are kept in memory")
		repo = repository.NewMemoryAirplaneRepository()
	} else {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			logg.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		checks["postgres"] = pool.Ping
		repo = repository.NewAirplaneRepository(pool)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		logg.Fatalf("ensure schema: %v", err)
	}

	var listCache airplanes.Cache
	if cfg.Redis.Addr != "" && cfg.Fleet.ListCacheSeconds > 0 {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Fleet.ListCacheSeconds)*time.Second)
		defer redisCache.Close()
		checks["redis"] = redisCache.Ping
		listCache = redisCache
	}

	var producer airplanes.Producer
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.AirplanesTopic != "" {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, logg)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	m := metrics.New()
	airplaneService := airplanes.NewAirplaneService(
		repo,
		listCache,
		producer,
		airplanes.WithEventsTopic(cfg.Kafka.AirplanesTopic),
		airplanes.WithMaxAirplanes(cfg.Fleet.MaxAirplanes),
		airplanes.WithRecorder(m),
		airplanes.WithLogger(logg),
	)

	if err := bootstrap.Run(ctx, cfg, bootstrap.Dependencies{
		Airplanes: airplaneService,
		Metrics:   m,
		Checks:    checks,
		Log:       logg,
	}); err != nil {
		logg.Fatalf("server error: %v", err)
	}
}
