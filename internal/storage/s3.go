package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/pixelforge/transcoder/internal/errs"
)

// S3Gateway implements Gateway against S3-compatible stores.
type S3Gateway struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Gateway wraps an already configured client.
func NewS3Gateway(client *s3.Client) *S3Gateway {
	return &S3Gateway{
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

func (g *S3Gateway) Fetch(ctx context.Context, container, key string) ([]byte, error) {
	resp, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errs.Newf(errs.KindObjectNotFound, "fetch", "object %s/%s does not exist", container, key)
		}
		return nil, errs.New(errs.KindTransientStore, "fetch",
			fmt.Errorf("couldn't download object %s/%s: %w", container, key, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.New(errs.KindTransientStore, "fetch",
			fmt.Errorf("failed to read object body for %s/%s: %w", container, key, err))
	}
	return data, nil
}

func (g *S3Gateway) Write(ctx context.Context, container, key string, data []byte, contentType string) error {
	_, err := g.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(container),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("failed to upload object %s/%s: %w", container, key, err)
	if isRetryable(err) {
		return errs.New(errs.KindTransientStore, "upload", wrapped)
	}
	return errs.New(errs.KindWrite, "upload", wrapped)
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		code := ae.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

// isRetryable mirrors the service's own fault classification: server faults
// and throttling can succeed on redelivery, client faults cannot.
func isRetryable(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		// Connection-level failure without a service response.
		return true
	}
	switch ae.ErrorCode() {
	case "RequestTimeout", "SlowDown", "ServiceUnavailable", "InternalError", "Throttling", "ThrottlingException":
		return true
	}
	return ae.ErrorFault() == smithy.FaultServer
}
