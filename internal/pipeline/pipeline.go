// Package pipeline sequences the per-object transcoding run and classifies
// every failure into a well-defined result.
package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixelforge/transcoder/config"
	"github.com/pixelforge/transcoder/internal/codec"
	"github.com/pixelforge/transcoder/internal/errs"
	"github.com/pixelforge/transcoder/internal/event"
	"github.com/pixelforge/transcoder/internal/normalize"
	"github.com/pixelforge/transcoder/internal/resize"
	"github.com/pixelforge/transcoder/internal/storage"
)

// OutputContentType is fixed for every derivative.
const OutputContentType = "image/jpeg"

// State of an in-flight invocation. Each stage either advances to the next
// state or short-circuits the run to Failed with that stage's error kind.
type State int

const (
	StateReceived State = iota
	StateFetched
	StateDecoded
	StateNormalized
	StateResized
	StateEncoded
	StateUploaded
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateFetched:
		return "fetched"
	case StateDecoded:
		return "decoded"
	case StateNormalized:
		return "normalized"
	case StateResized:
		return "resized"
	case StateEncoded:
		return "encoded"
	case StateUploaded:
		return "uploaded"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Pipeline runs the Fetch → Decode → Normalize → Resize → Encode → Upload
// sequence. It holds no per-invocation state; every Run owns its buffers
// exclusively and discards them at completion.
type Pipeline struct {
	gateway storage.Gateway
	log     *zap.Logger

	destination string
	quality     int
	scale       float64
	filter      string
}

// New wires an orchestrator from its injected dependencies. The config is
// assumed validated at startup.
func New(gateway storage.Gateway, log *zap.Logger, cfg *config.Config) *Pipeline {
	return &Pipeline{
		gateway:     gateway,
		log:         log,
		destination: cfg.DestinationBucket,
		quality:     cfg.TargetQuality,
		scale:       cfg.ScaleFactor,
		filter:      cfg.ResampleFilter,
	}
}

// Run processes one trigger payload end to end and always returns a
// classified result; no error escapes this boundary.
func (p *Pipeline) Run(ctx context.Context, payload []byte) Result {
	log := p.log.With(zap.String("invocation_id", uuid.NewString()))
	log.Info("invocation received", zap.ByteString("payload", payload))

	inbound, err := event.Parse(payload)
	if err != nil {
		return p.fail(log, StateReceived, err)
	}
	log = log.With(
		zap.String("source_container", inbound.SourceContainer),
		zap.String("source_key", inbound.SourceKey),
	)

	raw, err := p.gateway.Fetch(ctx, inbound.SourceContainer, inbound.SourceKey)
	if err != nil {
		return p.fail(log, StateReceived, err)
	}
	log.Info("object fetched", zap.Int("size_bytes", len(raw)))

	desc, buf, err := codec.Decode(raw)
	if err != nil {
		return p.fail(log, StateFetched, err)
	}
	log.Info("object decoded",
		zap.Int("width", desc.Width),
		zap.Int("height", desc.Height),
		zap.String("color_mode", string(desc.ColorMode)),
		zap.String("source_format", desc.SourceFormat),
	)

	buf = normalize.Normalize(buf, desc)

	buf, width, height := resize.Resize(buf, desc, p.scale, p.filter)
	log.Info("object resized", zap.Int("width", width), zap.Int("height", height))

	encoded, err := codec.Encode(buf, p.quality)
	if err != nil {
		return p.fail(log, StateResized, err)
	}
	sizeMB := float64(len(encoded)) / (1024 * 1024)
	log.Info("object encoded", zap.String("output_mb", fmt.Sprintf("%.2f", sizeMB)))

	outputKey := DeriveKey(inbound.SourceKey)
	if err := p.gateway.Write(ctx, p.destination, outputKey, encoded, OutputContentType); err != nil {
		return p.fail(log, StateEncoded, err)
	}

	log.Info("invocation completed",
		zap.String("destination_container", p.destination),
		zap.String("output_key", outputKey),
		zap.Int("output_size_bytes", len(encoded)),
	)
	return Result{
		Status:          StatusSuccess,
		OutputKey:       outputKey,
		OutputSizeBytes: len(encoded),
		Message: fmt.Sprintf("transcoded to %s/%s (%.2f MB)",
			p.destination, outputKey, sizeMB),
	}
}

// fail logs the classified error with the state it interrupted and converts
// it into the matching result.
func (p *Pipeline) fail(log *zap.Logger, reached State, err error) Result {
	kind := errs.KindOf(err)
	log.Error("invocation failed",
		zap.String("error_kind", string(kind)),
		zap.String("stage", errs.StageOf(err)),
		zap.String("state_reached", reached.String()),
		zap.Error(err),
	)

	status := StatusServerError
	if kind == errs.KindUnsupportedFormat {
		status = StatusClientError
	}
	return Result{Status: status, Message: err.Error(), Retryable: errs.IsRetryable(err)}
}

// DeriveKey replaces the source key's extension with ".jpg". Keys without
// an extension get ".jpg" appended.
func DeriveKey(sourceKey string) string {
	return strings.TrimSuffix(sourceKey, path.Ext(sourceKey)) + ".jpg"
}
