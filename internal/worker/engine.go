// Package worker runs the poll loop: fetch the upstream payload, run it
// through the decompress/parse pipeline, and publish the normalized records.
package worker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/aishub-feed/internal/compress"
	"github.com/example/aishub-feed/internal/models"
	"github.com/example/aishub-feed/internal/parser"
)

// FailureKind classifies the stage at which a fetch cycle failed.
type FailureKind string

const (
	// FailureFetch covers transport level failures reaching the upstream
	// service.
	FailureFetch FailureKind = "fetch"
	// FailureDecompress covers payloads inconsistent with the declared
	// compression scheme.
	FailureDecompress FailureKind = "decompress"
	// FailureParse covers payloads inconsistent with the declared
	// serialization format.
	FailureParse FailureKind = "parse"
	// FailurePublish covers Kafka delivery failures.
	FailurePublish FailureKind = "publish"
)

// Fetcher issues one upstream query and returns the raw response.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.RawResponse, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context) (*models.RawResponse, error)

// Fetch implements Fetcher.
func (f FetchFunc) Fetch(ctx context.Context) (*models.RawResponse, error) { return f(ctx) }

// PositionPublisher emits one event per normalized vessel record.
type PositionPublisher interface {
	PublishPosition(ctx context.Context, event models.PositionEvent) error
}

// StatusPublisher emits the per-cycle feed status event.
type StatusPublisher interface {
	PublishFeedStatus(ctx context.Context, status models.FeedStatus) error
}

// Config contains the runtime settings for the poll loop.
type Config struct {
	PollInterval time.Duration
}

// Dependencies collects the runtime collaborators required by the engine.
type Dependencies struct {
	Fetcher   Fetcher
	Positions PositionPublisher
	Status    StatusPublisher
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Engine drives the periodic fetch cycles. Structural failures abort the
// current cycle only; the loop continues on the next tick.
type Engine struct {
	cfg  Config
	deps Dependencies
}

// NewEngine validates the dependencies and constructs an Engine.
func NewEngine(cfg Config, deps Dependencies) (*Engine, error) {
	if deps.Fetcher == nil {
		return nil, errors.New("worker engine: fetcher dependency is required")
	}
	if deps.Positions == nil {
		return nil, errors.New("worker engine: position publisher dependency is required")
	}
	if deps.Status == nil {
		return nil, errors.New("worker engine: status publisher dependency is required")
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("worker engine: poll interval must be positive")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if reflect.ValueOf(deps.Logger).IsZero() {
		deps.Logger = zerolog.Nop()
	}
	return &Engine{cfg: cfg, deps: deps}, nil
}

// Run executes one cycle immediately and then one per poll interval until
// the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.cycle(ctx)

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.cycle(ctx)
		}
	}
}

func (e *Engine) cycle(ctx context.Context) {
	msg, err := e.RunOnce(ctx)
	if err != nil {
		e.deps.Logger.Error().Err(err).Msg("fetch cycle failed")
		return
	}
	if upErr := msg.Header.Err(); upErr != nil {
		e.deps.Logger.Warn().Err(upErr).Msg("upstream reported an error")
		return
	}
	e.deps.Logger.Info().Int("records", len(msg.Records)).Msg("fetch cycle complete")
}

// RunOnce performs a single fetch cycle: query, decompress, parse, publish.
// An upstream application error (nonzero header code) is a successful cycle
// with no published positions; only structural failures return an error.
func (e *Engine) RunOnce(ctx context.Context) (*models.ParsedMessage, error) {
	start := e.deps.Now()
	batchID := uuid.NewString()

	raw, err := e.deps.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, e.fail(ctx, batchID, start, FailureFetch, err)
	}

	plain, err := compress.Decompress(raw.Payload, raw.Compression)
	if err != nil {
		return nil, e.fail(ctx, batchID, start, FailureDecompress, err)
	}

	msg, err := parser.Parse(plain, raw.Format)
	if err != nil {
		return nil, e.fail(ctx, batchID, start, FailureParse, err)
	}

	if upErr := msg.Header.Err(); upErr != nil {
		status := models.FeedStatus{
			BatchID:    batchID,
			Status:     models.FeedStatusUpstream,
			DurationMs: e.deps.Now().Sub(start).Milliseconds(),
			Timestamp:  e.deps.Now(),
		}
		var ue *models.UpstreamError
		if errors.As(upErr, &ue) {
			status.UpstreamCode = ue.Code
			status.UpstreamMessage = ue.Message
		}
		e.publishStatus(ctx, status)
		return msg, nil
	}

	for _, rec := range msg.Records {
		event := models.PositionEvent{
			EventID:   uuid.NewString(),
			BatchID:   batchID,
			FetchedAt: start,
			Record:    rec,
		}
		if err := e.deps.Positions.PublishPosition(ctx, event); err != nil {
			return nil, e.fail(ctx, batchID, start, FailurePublish, err)
		}
	}

	e.publishStatus(ctx, models.FeedStatus{
		BatchID:    batchID,
		Status:     models.FeedStatusOK,
		Records:    len(msg.Records),
		DurationMs: e.deps.Now().Sub(start).Milliseconds(),
		Timestamp:  e.deps.Now(),
	})

	return msg, nil
}

func (e *Engine) fail(ctx context.Context, batchID string, start time.Time, kind FailureKind, err error) error {
	e.publishStatus(ctx, models.FeedStatus{
		BatchID:     batchID,
		Status:      models.FeedStatusFailed,
		FailureKind: string(kind),
		Error:       err.Error(),
		DurationMs:  e.deps.Now().Sub(start).Milliseconds(),
		Timestamp:   e.deps.Now(),
	})
	return fmt.Errorf("worker engine: %s: %w", kind, err)
}

func (e *Engine) publishStatus(ctx context.Context, status models.FeedStatus) {
	if err := e.deps.Status.PublishFeedStatus(ctx, status); err != nil {
		e.deps.Logger.Error().Err(err).Str("batch_id", status.BatchID).Msg("failed to publish feed status")
	}
}
