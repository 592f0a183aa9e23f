package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/DRSN-tech/pricing-api/pkg/jitter"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	retryBaseDelay = 100 * time.Millisecond
	retryMaxDelay  = 2 * time.Second
)

// MessageWriter — часть kafka.Writer, нужная продюсеру.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PriceChangedMessage — JSON-представление события изменения цены в топике.
type PriceChangedMessage struct {
	EventID   string    `json:"eventId"`
	ProductID int64     `json:"productId"`
	OldPrice  string    `json:"oldPrice"`
	NewPrice  string    `json:"newPrice"`
	Reason    string    `json:"reason"`
	ChangedAt time.Time `json:"changedAt"`
}

// Producer публикует события изменения цен. Ключ сообщения — id продукта,
// поэтому события одного продукта попадают в одну партицию.
type Producer struct {
	writer MessageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return NewProducerWithWriter(writer, logger, cfg)
}

func NewProducerWithWriter(writer MessageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// WritePriceChanged публикует событие, повторяя запись с экспоненциальной задержкой.
// Все попытки вместе ограничены cfg.PublishTimeout, чтобы не задерживать ответ клиенту.
func (p *Producer) WritePriceChanged(ctx context.Context, event *usecase.PriceChangedEvent) error {
	if p.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.PublishTimeout)
		defer cancel()
	}

	value, err := GetPayloadBytes(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ProductID, 10)),
		Value: value,
	}

	var lastErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := jitter.ExponentialBackoff(retryBaseDelay, retryMaxDelay, attempt-1, jitter.DefaultJitter)
			p.logger.Debugf("retrying price change event %s in %v (attempt %d)", event.EventID, delay, attempt)

			select {
			case <-ctx.Done():
				return e.Wrap(whereami.WhereAmI(), ctx.Err())
			case <-time.After(delay):
			}
		}

		if lastErr = p.writer.WriteMessages(ctx, msg); lastErr == nil {
			return nil
		}

		if ctx.Err() != nil {
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		}
	}

	return e.Wrap(whereami.WhereAmI(), lastErr)
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

// Close подходит для closer.Add.
func (p *Producer) Close(_ context.Context) error {
	return p.writer.Close()
}

func GetPayloadBytes(event *usecase.PriceChangedEvent) ([]byte, error) {
	return json.Marshal(PriceChangedMessage{
		EventID:   event.EventID,
		ProductID: event.ProductID,
		OldPrice:  domain.FormatMoney(event.OldPrice),
		NewPrice:  domain.FormatMoney(event.NewPrice),
		Reason:    string(event.Reason),
		ChangedAt: event.ChangedAt.UTC(),
	})
}
