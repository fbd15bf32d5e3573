package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EnvelopeHandler processes one decoded event envelope. Returning an error
// rejects the delivery without requeueing it.
type EnvelopeHandler func(ctx context.Context, envelope Envelope) error

// Consumer reads event envelopes from a queue bound to the fanout exchange
// and hands them to a handler. It keeps a reconnect loop with exponential
// backoff, so a broker restart does not kill the process.
type Consumer struct {
	url      string
	exchange string
	queue    string
	handler  EnvelopeHandler
	log      *zap.Logger
}

func NewConsumer(url, exchange, queue string, handler EnvelopeHandler, log *zap.Logger) *Consumer {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Consumer{
		url:      url,
		exchange: exchange,
		queue:    queue,
		handler:  handler,
		log:      log.With(zap.String("component", "amqp-consumer"), zap.String("queue", queue)),
	}
}

// Run consumes until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker, retrying",
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
			continue
		}

		conn.Close()
		return nil
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = channel.Close() }()

	if err := channel.ExchangeDeclare(c.exchange, "fanout", false, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}

	queue, err := channel.QueueDeclare(c.queue, false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}
	if err := channel.QueueBind(queue.Name, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue.Name, err)
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %s: %w", queue.Name, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(ctx, delivery.Body); err != nil {
				c.log.Error("Failed to handle delivery", zap.Error(err))
				// Reject without requeueing to avoid a tight redelivery loop.
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	return c.handler(ctx, envelope)
}
