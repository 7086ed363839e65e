// Package events forwards committed order and operator changes to a
// message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"scantrack/internal/core/ports"

	"go.uber.org/zap"
)

const (
	BrokerNone     = "none"
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

func encode(event ports.ChangeEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode change event %s: %w", event.ID, err)
	}
	return body, nil
}

// routingKey is "<collection>.<kind>", e.g. "orders.upserted".
func routingKey(event ports.ChangeEvent) string {
	return string(event.Collection) + "." + string(event.Kind)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct {
	logger *zap.Logger
}

func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(_ context.Context, events ...ports.ChangeEvent) error {
	for _, e := range events {
		p.logger.Debug("change event",
			zap.String("collection", string(e.Collection)),
			zap.String("kind", string(e.Kind)),
			zap.String("entity_id", e.EntityID),
		)
	}
	return nil
}

func (p *NopPublisher) Close() error {
	return nil
}
