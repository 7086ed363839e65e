package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"scantrack/internal/adapters/out/events"
	"scantrack/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	at      = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	started = ports.ChangeEvent{
		ID: "e1", Collection: ports.OrdersCollection, Kind: ports.ChangeUpserted,
		EntityID: "ORD-1", Status: "in_progress", OccurredAt: at,
	}
	removed = ports.ChangeEvent{
		ID: "e2", Collection: ports.OperatorsCollection, Kind: ports.ChangeDeleted,
		EntityID: "A1", OccurredAt: at,
	}
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func Test_KafkaPublisherWritesOneMessagePerEvent(t *testing.T) {
	ctx := t.Context()
	writer := &MockWriter{}
	var written []kafka.Message
	writer.On("WriteMessages", ctx, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	err := events.NewKafkaPublisher(writer).Publish(ctx, started, removed)

	require.NoError(t, err)
	writer.AssertExpectations(t)
	require.Len(t, written, 2)
	assert.Equal(t, []byte("ORD-1"), written[0].Key)
	assert.Equal(t, "orders.upserted", string(written[0].Headers[0].Value))
	assert.Equal(t, "operators.deleted", string(written[1].Headers[0].Value))

	var decoded ports.ChangeEvent
	require.NoError(t, json.Unmarshal(written[0].Value, &decoded))
	assert.Equal(t, started, decoded)
}

func Test_KafkaPublisherSkipsEmptyBatch(t *testing.T) {
	writer := &MockWriter{}

	require.NoError(t, events.NewKafkaPublisher(writer).Publish(t.Context()))
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func Test_KafkaPublisherWrapsWriterError(t *testing.T) {
	ctx := t.Context()
	boom := errors.New("broker down")
	writer := &MockWriter{}
	writer.On("WriteMessages", ctx, mock.Anything).Return(boom).Once()

	err := events.NewKafkaPublisher(writer).Publish(ctx, started)

	require.ErrorIs(t, err, boom)
}

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	acks      chan amqp.Confirmation
	nack      bool
	err       error
}

func (c *fakeChannel) PublishWithContext(
	_ context.Context, _ string, key string, _, _ bool, msg amqp.Publishing,
) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, msg)
	c.keys = append(c.keys, key)
	c.acks <- amqp.Confirmation{DeliveryTag: uint64(len(c.published)), Ack: !c.nack}
	return nil
}

func (c *fakeChannel) Close() error {
	return nil
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{acks: make(chan amqp.Confirmation, 1)}
}

func Test_RabbitPublisherWaitsForConfirms(t *testing.T) {
	ch := newFakeChannel()
	p := events.NewRabbitPublisher(ch, ch.acks, "scantrack")

	err := p.Publish(t.Context(), started, removed)

	require.NoError(t, err)
	assert.Equal(t, []string{"orders.upserted", "operators.deleted"}, ch.keys)
	assert.Equal(t, "e1", ch.published[0].MessageId)
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[1].DeliveryMode)
	require.NoError(t, p.Close())
}

func Test_RabbitPublisherReportsNack(t *testing.T) {
	ch := newFakeChannel()
	ch.nack = true

	err := events.NewRabbitPublisher(ch, ch.acks, "scantrack").Publish(t.Context(), started)

	require.ErrorIs(t, err, events.ErrPublishNacked)
}

func Test_RabbitPublisherStopsOnCancelledContext(t *testing.T) {
	ch := newFakeChannel()
	// no confirmation will ever arrive
	silent := make(chan amqp.Confirmation)
	ch.acks = make(chan amqp.Confirmation, 1)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := events.NewRabbitPublisher(ch, silent, "scantrack").Publish(ctx, started)

	require.ErrorIs(t, err, context.Canceled)
}

func Test_NopPublisherAcceptsEverything(t *testing.T) {
	p := events.NewNopPublisher(nil)

	require.NoError(t, p.Publish(t.Context(), started, removed))
	require.NoError(t, p.Close())
}
