package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airplanes/config"
	"github.com/Domenick1991/airplanes/internal/kafka"
	"github.com/Domenick1991/airplanes/internal/logger"
	"github.com/Domenick1991/airplanes/internal/report"
	"github.com/Domenick1991/airplanes/internal/repository"
	"github.com/Domenick1991/airplanes/internal/service/airplanes"
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
	if cfg.Database.InMemory() {
		logg.Fatal("worker needs database.host: the in-memory store is not shared between processes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logg.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	airplaneService := airplanes.NewAirplaneService(
		repository.NewAirplaneRepository(pool),
		nil,
		nil,
		airplanes.WithMaxAirplanes(cfg.Fleet.MaxAirplanes),
		airplanes.WithLogger(logg),
	)
	reporter := report.NewReporter(logg)

	consumer := kafka.NewAirplaneConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.AirplanesTopic, logg)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, reporter.Send); err != nil && ctx.Err() == nil {
			logg.WithError(err).Error("consumer stopped")
		}
	}()

	summaryTicker := time.NewTicker(time.Duration(cfg.Worker.SummaryMinutes) * time.Minute)
	defer summaryTicker.Stop()

	for {
		select {
		case <-summaryTicker.C:
			fleet, err := airplaneService.List(ctx)
			if err != nil {
				logg.WithError(err).Error("list airplanes for summary")
				continue
			}
			reporter.Summary(fleet)
		case <-ctx.Done():
			logg.Info("shutting down worker")
			return
		}
	}
}
