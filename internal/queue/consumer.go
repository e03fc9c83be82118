package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/pixelforge/transcoder/internal/pipeline"
)

// Consumer delivers queued trigger payloads into the pipeline, one at a
// time. Redelivery decisions follow the result: only retryable failures
// are requeued, everything else is dropped after logging.
type Consumer struct {
	pipe      *pipeline.Pipeline
	log       *zap.Logger
	url       string
	queueName string
}

func NewConsumer(pipe *pipeline.Pipeline, log *zap.Logger, url, queueName string) *Consumer {
	return &Consumer{pipe: pipe, log: log, url: url, queueName: queueName}
}

// Start blocks consuming deliveries until the context is cancelled or the
// channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	conn, err := NewRabbitMQClient(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := NewChannel(conn)
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := NewQueue(ch, c.queueName); err != nil {
		return err
	}

	msgs, err := NewQueueConsumer(ch, c.queueName)
	if err != nil {
		return err
	}

	c.log.Info("worker started, waiting for messages", zap.String("queue", c.queueName))
	for {
		select {
		case <-ctx.Done():
			c.log.Info("shutting down", zap.String("queue", c.queueName))
			return nil
		case d, ok := <-msgs:
			if !ok {
				c.log.Warn("delivery channel closed", zap.String("queue", c.queueName))
				return nil
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	result := c.pipe.Run(ctx, d.Body)
	resp := result.Response()

	switch {
	case result.Status == pipeline.StatusSuccess:
		d.Ack(false)
	case result.Retryable:
		d.Nack(false, true)
	default:
		d.Nack(false, false)
	}
	c.log.Info("delivery handled",
		zap.Int("status_code", resp.StatusCode),
		zap.Bool("requeued", result.Status != pipeline.StatusSuccess && result.Retryable),
	)
}
