package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Vodeneev/totobet/internal/parser/toto"
	"github.com/Vodeneev/totobet/internal/pkg/config"
	"github.com/Vodeneev/totobet/internal/pkg/logging"
	"github.com/Vodeneev/totobet/internal/pkg/models"
	"github.com/Vodeneev/totobet/internal/pkg/storage"
)

var (
	configPath = flag.String("config", "", "path to YAML configuration file (optional)")
	dbPath     = flag.String("db", "", "sqlite database path (overrides config)")
	doRefresh  = flag.Bool("refresh", false, "fetch the page and ingest a new snapshot")
	fetchMode  = flag.String("mode", toto.ModeAuto, "fetch mode: auto, rendered, or static")
	doList     = flag.Bool("list", false, "print sections, markets, and sample outcomes")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.SQLitePath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Setup(&cfg.Logging, "totobet")

	// A refresh is the only operation that may create a first database;
	// everything else needs an existing file to work on.
	if cfg.Storage.Driver == "sqlite" && !*doRefresh {
		if _, err := os.Stat(cfg.Storage.SQLitePath); err != nil {
			log.Fatalf("Database %s does not exist (run with --refresh to create it)", cfg.Storage.SQLitePath)
		}
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	static := toto.NewStaticFetcher(cfg.Source.Timeout, cfg.Source.UserAgent)
	rendered := toto.NewRenderedFetcher(cfg.Source.UserAgent, cfg.Render.MaxExpandRounds)
	parser := toto.NewParser(cfg.Source.URL, store, static, rendered)

	if *doRefresh {
		refreshCtx, cancel := context.WithTimeout(ctx, cfg.Render.Timeout)
		snapID, err := parser.Refresh(refreshCtx, *fetchMode)
		cancel()
		if err != nil {
			log.Fatalf("Refresh failed: %v", err)
		}
		fmt.Printf("Snapshot stored: %d\n", snapID)
	}

	if !*doList {
		return
	}

	markets, err := store.ListMarkets(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to list markets: %v", err)
	}
	// Listing an empty database without an explicit refresh request still
	// yields something useful: one static refresh.
	if len(markets) == 0 && !*doRefresh {
		fmt.Println("Database empty -> refreshing once (static mode) ...")
		refreshCtx, cancel := context.WithTimeout(ctx, cfg.Source.Timeout)
		_, err := parser.Refresh(refreshCtx, toto.ModeStatic)
		cancel()
		if err != nil {
			log.Fatalf("Refresh failed: %v", err)
		}
		if markets, err = store.ListMarkets(ctx, nil); err != nil {
			log.Fatalf("Failed to list markets: %v", err)
		}
	}

	if err := printListing(ctx, store, markets); err != nil {
		log.Fatalf("Failed to print listing: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*storage.Store, error) {
	if cfg.Storage.Driver == "postgres" {
		return storage.OpenPostgres(ctx, cfg.Storage.PostgresDSN, cfg.Storage.RetainRaw)
	}
	return storage.OpenSQLite(cfg.Storage.SQLitePath, cfg.Storage.RetainRaw)
}

const sampleOutcomes = 10

func printListing(ctx context.Context, store *storage.Store, markets []models.Market) error {
	sections, err := store.ListSections(ctx)
	if err != nil {
		return err
	}
	fmt.Println("== Sections ==")
	for _, s := range sections {
		fmt.Printf("[%d] %s\n", s.ID, s.Title)
	}

	fmt.Println("\n== Markets & sample outcomes ==")
	for _, m := range markets {
		fmt.Printf("[%d] %s\n", m.ID, m.Name)
		outcomes, err := store.ListOutcomes(ctx, m.ID)
		if err != nil {
			return err
		}
		for i, o := range outcomes {
			if i == sampleOutcomes {
				break
			}
			fmt.Printf("   - %s: %.2f (p=%.3f)\n", o.SelectionName, o.OddsDecimal, o.ImpliedProb)
		}
		if len(outcomes) > sampleOutcomes {
			fmt.Printf("   ... %d more\n", len(outcomes)-sampleOutcomes)
		}
	}
	return nil
}
