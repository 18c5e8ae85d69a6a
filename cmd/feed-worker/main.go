package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/aishub-feed/internal/aishub"
	"github.com/example/aishub-feed/internal/config"
	"github.com/example/aishub-feed/internal/kafka/producer"
	kafkapublisher "github.com/example/aishub-feed/internal/kafka/publisher"
	"github.com/example/aishub-feed/internal/logger"
	"github.com/example/aishub-feed/internal/models"
	"github.com/example/aishub-feed/internal/util"
	"github.com/example/aishub-feed/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fail("config load", err)
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fail("logger init", err)
	}
	log := baseLogger.With().Str("service", "feed-worker").Logger()

	prod, err := producer.New(cfg.Kafka.Brokers, log.With().Str("component", "kafka").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create kafka producer")
	}
	defer func() {
		if err := prod.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka producer")
		}
	}()

	positions := kafkapublisher.NewPositionPublisher(prod, cfg.Topics.Positions, log.With().Str("component", "position-publisher").Logger())
	if positions == nil {
		log.Fatal().Msg("failed to create position publisher")
	}
	status := kafkapublisher.NewFeedStatusPublisher(prod, cfg.Topics.FeedStatus, log.With().Str("component", "status-publisher").Logger())
	if status == nil {
		log.Fatal().Msg("failed to create feed status publisher")
	}

	client, err := aishub.NewClient(cfg.AISHub, log.With().Str("component", "aishub-client").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise aishub client")
	}

	fetcher, err := selectFetcher(client, cfg.Feed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure feed scope")
	}

	engine, err := worker.NewEngine(worker.Config{
		PollInterval: time.Duration(cfg.Feed.PollIntervalSeconds) * time.Second,
	}, worker.Dependencies{
		Fetcher:   fetcher,
		Positions: positions,
		Status:    status,
		Logger:    log.With().Str("component", "worker-engine").Logger(),
		Now:       time.Now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise worker engine")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info().
		Str("scope", cfg.Feed.Scope).
		Str("output", cfg.AISHub.Output).
		Int("poll_interval_seconds", cfg.Feed.PollIntervalSeconds).
		Msg("feed worker started")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("engine terminated with error")
		}
	}
}

func selectFetcher(client *aishub.Client, feed config.FeedConfig) (worker.Fetcher, error) {
	switch feed.Scope {
	case config.ScopeVessel:
		// MMSI takes precedence when both identifiers are configured.
		mmsi, imo := feed.MMSI, 0
		if mmsi == 0 {
			imo = feed.IMO
		}
		return worker.FetchFunc(func(ctx context.Context) (*models.RawResponse, error) {
			return client.FetchVessel(ctx, mmsi, imo)
		}), nil
	case config.ScopeArea:
		area := util.Area{
			LatMin: feed.LatMin,
			LatMax: feed.LatMax,
			LonMin: feed.LonMin,
			LonMax: feed.LonMax,
		}
		if err := area.Validate(); err != nil {
			return nil, err
		}
		return worker.FetchFunc(func(ctx context.Context) (*models.RawResponse, error) {
			return client.FetchArea(ctx, area)
		}), nil
	case config.ScopeAll:
		return worker.FetchFunc(client.FetchAll), nil
	default:
		return nil, errors.New("unknown feed scope " + feed.Scope)
	}
}

func fail(stage string, err error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Fatal().Err(err).Str("stage", stage).Msg("feed worker init failed")
}
