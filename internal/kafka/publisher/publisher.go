package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/example/aishub-feed/internal/models"
)

var errProducerNotInitialised = errors.New("kafka publisher: producer not initialised")

// SyncProducer captures the subset of producer behaviour required by the
// Kafka publishers.
type SyncProducer interface {
	PublishSync(topic string, key []byte, headers map[string][]byte, payload []byte) error
}

// ErrProducerNotInitialised exposes the sentinel error for callers and tests.
func ErrProducerNotInitialised() error {
	return errProducerNotInitialised
}

// PositionPublisher emits vessel position events to a Kafka topic, keyed by
// MMSI so each vessel's positions land on one partition in order.
type PositionPublisher struct {
	producer SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewPositionPublisher constructs a PositionPublisher instance.
func NewPositionPublisher(prod SyncProducer, topic string, logger zerolog.Logger) *PositionPublisher {
	if prod == nil {
		return nil
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &PositionPublisher{
		producer: prod,
		topic:    topic,
		logger:   logger,
	}
}

// PublishPosition writes the supplied position event to Kafka synchronously.
func (p *PositionPublisher) PublishPosition(_ context.Context, event models.PositionEvent) error {
	if p == nil || p.producer == nil {
		return errProducerNotInitialised
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal position event: %w", err)
	}

	key := []byte(strconv.Itoa(event.Record.MMSI))
	headers := map[string][]byte{
		"content-type": []byte("application/json"),
	}

	if err := p.producer.PublishSync(p.topic, key, headers, payload); err != nil {
		return fmt.Errorf("kafka publisher: publish position event: %w", err)
	}
	return nil
}

// FeedStatusPublisher writes per-cycle feed status events to the configured
// Kafka topic.
type FeedStatusPublisher struct {
	producer SyncProducer
	topic    string
	logger   zerolog.Logger
}

// NewFeedStatusPublisher constructs a FeedStatusPublisher instance.
func NewFeedStatusPublisher(prod SyncProducer, topic string, logger zerolog.Logger) *FeedStatusPublisher {
	if prod == nil {
		return nil
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &FeedStatusPublisher{
		producer: prod,
		topic:    topic,
		logger:   logger,
	}
}

// PublishFeedStatus writes the supplied status event to Kafka synchronously.
func (p *FeedStatusPublisher) PublishFeedStatus(_ context.Context, status models.FeedStatus) error {
	if p == nil || p.producer == nil {
		return errProducerNotInitialised
	}

	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal feed status: %w", err)
	}

	key := []byte(status.BatchID)
	headers := map[string][]byte{
		"content-type": []byte("application/json"),
	}

	if err := p.producer.PublishSync(p.topic, key, headers, payload); err != nil {
		return fmt.Errorf("kafka publisher: publish feed status: %w", err)
	}
	return nil
}
