// Command import-cards loads card definitions and deck lists from CSV files
// into the catalog database read by the server's postgres catalog source.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hexcardgame/hexcard-server-go/internal/catalog"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"go.uber.org/zap"
)

var (
	databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "catalog database URL")
	cardsPath   = flag.String("cards", "data/cards.csv", "CSV of id,name,description,visual")
	decksPath   = flag.String("decks", "", "optional CSV of deck,player,card_id,copies")
	replace     = flag.Bool("replace", false, "truncate the catalog tables before importing")
	batchSize   = flag.Int("batch", 500, "rows per transaction")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *databaseURL == "" {
		logger.Fatal("no database URL; set -database-url or DATABASE_URL")
	}

	ctx := context.Background()
	defs, err := readDefinitions(*cardsPath)
	if err != nil {
		logger.Fatal("failed to read card definitions", zap.String("path", *cardsPath), zap.Error(err))
	}
	var decks []deckRow
	if *decksPath != "" {
		if decks, err = readDecks(*decksPath); err != nil {
			logger.Fatal("failed to read deck lists", zap.String("path", *decksPath), zap.Error(err))
		}
	}
	logger.Info("parsed catalog files", zap.Int("definitions", len(defs)), zap.Int("deck_entries", len(decks)))

	pool, err := catalog.Connect(ctx, *databaseURL, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	imp := &importer{db: pool, batchSize: *batchSize, logger: logger}
	start := time.Now()
	if err := imp.Run(ctx, defs, decks, *replace); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("import complete",
		zap.Int("definitions", len(defs)),
		zap.Int("deck_entries", len(decks)),
		zap.Duration("took", time.Since(start)),
	)
}

func readDefinitions(path string) ([]card.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseDefinitions(f)
}

func readDecks(path string) ([]deckRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseDecks(f)
}
