package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

// DefaultExchange is the fanout exchange domain events are published to.
const DefaultExchange = "event"

// AmqpEventing is an Eventing backend that publishes every raised event to a
// fanout exchange as a persistent JSON envelope. It is publish-only: the
// broker fans events out to its own consumers, so Receive on this backend
// registers nothing. In-process listeners belong on an InProcessEventing,
// typically combined with this one through a CompositeEventing.
type AmqpEventing struct {
	url      string
	exchange string
	log      *zap.Logger

	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAmqpEventing(url, exchange string, log *zap.Logger) *AmqpEventing {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &AmqpEventing{
		url:      url,
		exchange: exchange,
		log:      log.With(zap.String("component", "amqp-eventing")),
	}
}

// Connect dials the broker and declares the fanout exchange.
func (e *AmqpEventing) Connect() error {
	conn, err := amqp.Dial(e.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(e.exchange, "fanout", false, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", e.exchange, err)
	}

	e.conn = conn
	e.channel = channel
	return nil
}

func (e *AmqpEventing) Close() error {
	if e.channel != nil {
		if err := e.channel.Close(); err != nil {
			return fmt.Errorf("close channel: %w", err)
		}
	}
	if e.conn != nil {
		if err := e.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}

func (e *AmqpEventing) Raise(event domain.Event) {
	body, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		e.log.Error("Failed to marshal event envelope",
			zap.Error(err),
			zap.String("topic", string(event.Topic())),
		)
		return
	}

	err = e.channel.Publish(e.exchange, "", false, false, amqp.Publishing{
		ContentType:  "text/plain",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		e.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("topic", string(event.Topic())),
		)
	}
}

// Receive is a no-op; subscription happens on the broker side.
func (e *AmqpEventing) Receive(filter domain.Topic, fn func(domain.Event)) {}
