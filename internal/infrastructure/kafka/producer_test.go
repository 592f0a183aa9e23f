package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	failures int
	calls    int
	messages []kafka.Message
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testEvent() *usecase.PriceChangedEvent {
	return usecase.NewPriceChangedEvent(
		"evt-1",
		11,
		decimal.RequireFromString("100"),
		decimal.RequireFromString("90"),
		usecase.ReasonDiscount,
		time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
	)
}

func TestProducer_WritePriceChanged(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{MaxRetries: 0})

	require.NoError(t, producer.WritePriceChanged(context.Background(), testEvent()))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "11", string(writer.messages[0].Key))

	var msg PriceChangedMessage
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &msg))
	assert.Equal(t, "evt-1", msg.EventID)
	assert.Equal(t, "100.00", msg.OldPrice)
	assert.Equal(t, "90.00", msg.NewPrice)
	assert.Equal(t, "discount", msg.Reason)
}

func TestProducer_RetriesThenSucceeds(t *testing.T) {
	writer := &fakeWriter{failures: 1}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{MaxRetries: 2})

	require.NoError(t, producer.WritePriceChanged(context.Background(), testEvent()))
	assert.Equal(t, 2, writer.calls)
	assert.Len(t, writer.messages, 1)
}

func TestProducer_GivesUp(t *testing.T) {
	writer := &fakeWriter{failures: 10}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{MaxRetries: 1})

	err := producer.WritePriceChanged(context.Background(), testEvent())
	assert.ErrorContains(t, err, "broker unavailable")
	assert.Equal(t, 2, writer.calls)
}

func TestProducer_StopsOnCancelledContext(t *testing.T) {
	writer := &fakeWriter{failures: 10}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{MaxRetries: 5})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := producer.WritePriceChanged(ctx, testEvent())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, writer.calls)
}

func TestProducer_PublishTimeoutBoundsRetries(t *testing.T) {
	writer := &fakeWriter{failures: 100}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{
		MaxRetries:     20,
		PublishTimeout: 150 * time.Millisecond,
	})

	start := time.Now()
	err := producer.WritePriceChanged(context.Background(), testEvent())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Less(t, writer.calls, 21)
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	producer := NewProducerWithWriter(writer, logger.NewNop(), &cfg.KafkaCfg{})

	require.NoError(t, producer.Close(context.Background()))
	assert.True(t, writer.closed)
}
