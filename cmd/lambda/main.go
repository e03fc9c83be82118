package main

import (
	"context"
	"encoding/json"
	"log"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/pixelforge/transcoder/config"
	"github.com/pixelforge/transcoder/internal/pipeline"
	"github.com/pixelforge/transcoder/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
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

	awslambda.Start(func(ctx context.Context, payload json.RawMessage) (pipeline.Response, error) {
		return pipe.Run(ctx, payload).Response(), nil
	})
}
