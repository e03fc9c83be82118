package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/pixelforge/transcoder/config"
	"github.com/pixelforge/transcoder/internal/pipeline"
	"github.com/pixelforge/transcoder/internal/queue"
	"github.com/pixelforge/transcoder/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.RequireQueue(); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	awsCfg, err := config.LoadAws(ctx)
	if err != nil {
		logger.Fatal("failed to initialize aws", zap.Error(err))
	}

	gateway := storage.NewS3Gateway(s3.NewFromConfig(awsCfg))
	pipe := pipeline.New(gateway, logger, cfg)
	consumer := queue.NewConsumer(pipe, logger, cfg.RabbitMqURL, cfg.RabbitMqQueue)

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
