package main

import (
	"context"
	"fmt"

	"github.com/hexcardgame/hexcard-server-go/internal/catalog"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// database is the part of pgxpool.Pool the importer needs.
type database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	truncateCatalog  = `TRUNCATE deck_entries, card_definitions`
	upsertDefinition = `
		INSERT INTO card_definitions (id, name, description, visual)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, visual = EXCLUDED.visual`
	deleteDeck     = `DELETE FROM deck_entries WHERE deck = $1 AND player = $2`
	insertDeckLine = `
		INSERT INTO deck_entries (deck, player, position, card_id, copies)
		VALUES ($1, $2, $3, $4, $5)`
)

type importer struct {
	db        database
	batchSize int
	logger    *zap.Logger
}

// Run creates the schema, optionally clears it, and writes defs then decks.
// Definitions are committed in batches; every deck list of a seat is
// replaced as a whole.
func (imp *importer) Run(ctx context.Context, defs []card.Definition, decks []deckRow, replace bool) error {
	if _, err := imp.db.Exec(ctx, catalog.Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if replace {
		if _, err := imp.db.Exec(ctx, truncateCatalog); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		imp.logger.Info("catalog cleared")
	}

	size := imp.batchSize
	if size < 1 {
		size = len(defs)
	}
	for start := 0; start < len(defs); start += size {
		end := min(start+size, len(defs))
		err := pgx.BeginFunc(ctx, imp.db, func(tx pgx.Tx) error {
			for _, def := range defs[start:end] {
				if _, err := tx.Exec(ctx, upsertDefinition, def.ID, def.Name, def.Description, def.Visual); err != nil {
					return fmt.Errorf("insert card %q: %w", def.ID, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		imp.logger.Info("definitions imported", zap.Int("progress", end), zap.Int("total", len(defs)))
	}

	if len(decks) == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, imp.db, func(tx pgx.Tx) error {
		type seat struct {
			deck   string
			player card.PlayerID
		}
		cleared := make(map[seat]bool)
		for _, row := range decks {
			key := seat{row.Deck, row.Player}
			if !cleared[key] {
				if _, err := tx.Exec(ctx, deleteDeck, row.Deck, row.Player.String()); err != nil {
					return fmt.Errorf("clear deck %q for %s: %w", row.Deck, row.Player, err)
				}
				cleared[key] = true
			}
			if _, err := tx.Exec(ctx, insertDeckLine, row.Deck, row.Player.String(), row.Position, row.CardID, row.Copies); err != nil {
				return fmt.Errorf("insert deck %q line %d: %w", row.Deck, row.Position, err)
			}
		}
		imp.logger.Info("deck lists imported", zap.Int("seats", len(cleared)), zap.Int("entries", len(decks)))
		return nil
	})
}
