package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the part of pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Schema creates the catalog tables when they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS card_definitions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	visual      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS deck_entries (
	deck     TEXT NOT NULL,
	player   TEXT NOT NULL,
	position INT  NOT NULL,
	card_id  TEXT NOT NULL REFERENCES card_definitions (id),
	copies   INT  NOT NULL CHECK (copies > 0),
	PRIMARY KEY (deck, player, position)
);`

const (
	selectDefinitions = `SELECT id, name, description, visual FROM card_definitions ORDER BY id`
	selectDeckEntries = `SELECT player, card_id, copies FROM deck_entries WHERE deck = $1 ORDER BY player, position`
)

// Connect opens a pgx pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}
	if logger != nil {
		stats := pool.Stat()
		logger.Info("catalog database connected",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)
	}
	return pool, nil
}

// LoadPostgres reads every card definition and the deck lists of deck into
// an in-memory catalog. Games never query the database directly.
func LoadPostgres(ctx context.Context, q Querier, deck string, rng *rand.Rand) (*Static, error) {
	defs, err := loadDefinitions(ctx, q)
	if err != nil {
		return nil, err
	}
	decks, err := loadDecks(ctx, q, deck)
	if err != nil {
		return nil, err
	}
	return NewStatic(defs, decks, rng)
}

func loadDefinitions(ctx context.Context, q Querier) ([]card.Definition, error) {
	rows, err := q.Query(ctx, selectDefinitions)
	if err != nil {
		return nil, fmt.Errorf("query card definitions: %w", err)
	}
	defs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (card.Definition, error) {
		var def card.Definition
		err := row.Scan(&def.ID, &def.Name, &def.Description, &def.Visual)
		return def, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan card definitions: %w", err)
	}
	return defs, nil
}

func loadDecks(ctx context.Context, q Querier, deck string) (map[card.PlayerID][]DeckEntry, error) {
	rows, err := q.Query(ctx, selectDeckEntries, deck)
	if err != nil {
		return nil, fmt.Errorf("query deck %q: %w", deck, err)
	}
	defer rows.Close()

	decks := make(map[card.PlayerID][]DeckEntry, 2)
	for rows.Next() {
		var (
			player string
			entry  DeckEntry
		)
		if err := rows.Scan(&player, &entry.CardID, &entry.Copies); err != nil {
			return nil, fmt.Errorf("scan deck %q: %w", deck, err)
		}
		id, err := card.ParsePlayerID(player)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", deck, err)
		}
		decks[id] = append(decks[id], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read deck %q: %w", deck, err)
	}
	return decks, nil
}
