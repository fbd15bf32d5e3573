package listener

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/messaging"
)

// RedisPersister mirrors the latest customer snapshot into redis, keyed by
// the customer id, for cheap read-side lookups. It consumes the broker
// envelopes, so it works from any process that can reach the exchange.
type RedisPersister struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisPersister(client *redis.Client, log *zap.Logger) *RedisPersister {
	return &RedisPersister{
		client: client,
		log:    log.With(zap.String("listener", "redis-persister")),
	}
}

// HandleEnvelope stores the envelope's customer snapshot, if any.
func (p *RedisPersister) HandleEnvelope(ctx context.Context, envelope messaging.Envelope) error {
	if envelope.Customer == nil {
		return nil
	}

	body, err := json.MarshalIndent(envelope.Customer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal customer %s: %w", envelope.Customer.ID, err)
	}

	if err := p.client.Set(ctx, envelope.Customer.ID, body, 0).Err(); err != nil {
		p.log.Error("Failed to store customer snapshot",
			zap.Error(err),
			zap.String("customer_id", envelope.Customer.ID),
		)
		return fmt.Errorf("store customer %s: %w", envelope.Customer.ID, err)
	}

	p.log.Debug("Stored customer snapshot",
		zap.String("customer_id", envelope.Customer.ID),
		zap.String("event", envelope.Name),
	)
	return nil
}
