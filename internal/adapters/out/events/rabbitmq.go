package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"scantrack/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errors.New("publish NACK from broker")

// ConfirmChannel is the part of *amqp.Channel the publisher uses.
type ConfirmChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes to a topic exchange with publisher confirms.
// Publishes are serialized so every confirmation matches its message.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       ConfirmChannel
	acks     <-chan amqp.Confirmation
	exchange string
	mu       sync.Mutex
}

// DialRabbit connects, declares the exchange and enables confirms.
func DialRabbit(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq confirm mode: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	p := NewRabbitPublisher(ch, acks, exchange)
	p.conn = conn
	return p, nil
}

func NewRabbitPublisher(ch ConfirmChannel, acks <-chan amqp.Confirmation, exchange string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, acks: acks, exchange: exchange}
}

func (p *RabbitPublisher) Publish(ctx context.Context, events ...ports.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, e := range events {
		body, err := encode(e)
		if err != nil {
			return err
		}

		err = p.ch.PublishWithContext(ctx, p.exchange, routingKey(e), false, false, amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    e.ID,
			Timestamp:    e.OccurredAt,
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("rabbitmq publish %s: %w", e.ID, err)
		}

		select {
		case conf := <-p.acks:
			if !conf.Ack {
				return fmt.Errorf("rabbitmq publish %s: %w", e.ID, ErrPublishNacked)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
