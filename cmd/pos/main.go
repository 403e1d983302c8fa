// Command pos runs the campus coffee POS service: a REST API over a MongoDB
// POS store with OSM-backed imports.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/campuscoffee/pos-service/internal/adapter/httpapi"
	kafkaadapter "github.com/campuscoffee/pos-service/internal/adapter/kafka"
	"github.com/campuscoffee/pos-service/internal/adapter/mongostore"
	"github.com/campuscoffee/pos-service/internal/adapter/osm"
	"github.com/campuscoffee/pos-service/internal/config"
	"github.com/campuscoffee/pos-service/internal/observability"
	"github.com/campuscoffee/pos-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := mongostore.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase, clock, logger)
	cancelConnect()
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}

	// Fixture fallback is feature-flagged so staging can surface real OSM
	// failures instead of masking them.
	var recovery osm.RecoveryProvider
	if cfg.OSMFixturesEnabled {
		recovery = osm.DefaultFixtures()
	}
	client := osm.NewClient(cfg.OSMBaseURL, cfg.OSMTimeout, recovery, metrics, logger)
	fetcher := osm.NewCachedFetcher(client, cfg.OSMCacheSize, metrics)

	var publisher service.ImportPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaImportTopic, clock, logger)
		publisher = kafkaPublisher
		logger.Info("kafka import events enabled", "topic", cfg.KafkaImportTopic)
	} else {
		logger.Info("kafka import events disabled")
	}

	svc := service.New(store, fetcher, publisher, logger, metrics)
	srv := httpapi.NewServer(cfg.HTTPAddr, svc, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.ServiceUp.Set(1)
	defer metrics.ServiceUp.Set(0)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("mongodb close error", "error", err)
	}

	logger.Info("shutdown complete")
}
