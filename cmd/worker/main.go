package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/aleamz/salespoint/internal/app"
	"github.com/aleamz/salespoint/internal/platform/cache"
	"github.com/aleamz/salespoint/internal/platform/db"
	"github.com/aleamz/salespoint/internal/reports"
	"github.com/aleamz/salespoint/internal/sales/orders"
	"github.com/aleamz/salespoint/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	ordersRepo := orders.NewRepository(dbpool)
	reportsCache := reports.NewCache(redisClient, cfg.RevenueCacheTTL)
	reportsService := reports.NewService(logger, ordersRepo, reportsCache)

	warmup := jobs.NewRevenueWarmupJob(reportsService, logger)

	warmupTask, err := jobs.NewRevenueWarmupTask(jobs.RevenueWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskRevenueWarmup, Handler: warmup.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 * * * *", Task: warmupTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
