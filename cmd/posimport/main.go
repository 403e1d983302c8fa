// Command posimport imports one or more OSM nodes as POS records directly
// against the configured MongoDB, bypassing the HTTP API. Useful for seeding
// a fresh database or re-running imports from the command line.
//
// Usage:
//
//	go run ./cmd/posimport 5589879349 2713060210
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/campuscoffee/pos-service/internal/adapter/mongostore"
	"github.com/campuscoffee/pos-service/internal/adapter/osm"
	"github.com/campuscoffee/pos-service/internal/config"
	"github.com/campuscoffee/pos-service/internal/observability"
	"github.com/campuscoffee/pos-service/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	timeout := flag.Duration("timeout", 30*time.Second, "per-node import timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		return fmt.Errorf("usage: posimport [-timeout 30s] <node-id> [<node-id>...]")
	}

	nodeIDs := make([]int64, 0, flag.NArg())
	for _, arg := range flag.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid node id %q", arg)
		}
		nodeIDs = append(nodeIDs, id)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")
	metrics := observability.NewMetrics()

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := mongostore.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase, clockwork.NewRealClock(), logger)
	cancel()
	if err != nil {
		return err
	}
	defer store.Close(context.Background()) //nolint:errcheck // best-effort cleanup

	var recovery osm.RecoveryProvider
	if cfg.OSMFixturesEnabled {
		recovery = osm.DefaultFixtures()
	}
	fetcher := osm.NewClient(cfg.OSMBaseURL, cfg.OSMTimeout, recovery, metrics, logger)

	svc := service.New(store, fetcher, nil, logger, metrics)

	failures := 0
	for _, nodeID := range nodeIDs {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		pos, err := svc.ImportFromOsmNode(ctx, nodeID)
		cancel()
		if err != nil {
			failures++
			fmt.Printf("FAIL  node %d: %v\n", nodeID, err)
			continue
		}
		fmt.Printf("OK    node %d -> pos %d %q (%s, %s)\n", nodeID, pos.ID, pos.Name, pos.Type, pos.Campus)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d imports failed", failures, len(nodeIDs))
	}
	return nil
}
