package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	_ "modernc.org/sqlite"
)

const (
	sqliteSelectDefinitions = `SELECT id, name, description, visual FROM card_definitions ORDER BY id`
	sqliteSelectDeckEntries = `SELECT player, card_id, copies FROM deck_entries WHERE deck = ? ORDER BY player, position`
)

// OpenSQLite opens the catalog file at path and creates the schema when it
// is missing.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite catalog path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite catalog: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite catalog: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite catalog schema: %w", err)
	}
	return db, nil
}

// LoadSQLite is LoadPostgres for a catalog kept in a SQLite file.
func LoadSQLite(ctx context.Context, db *sql.DB, deck string, rng *rand.Rand) (*Static, error) {
	rows, err := db.QueryContext(ctx, sqliteSelectDefinitions)
	if err != nil {
		return nil, fmt.Errorf("query card definitions: %w", err)
	}
	defer rows.Close()

	var defs []card.Definition
	for rows.Next() {
		var def card.Definition
		if err := rows.Scan(&def.ID, &def.Name, &def.Description, &def.Visual); err != nil {
			return nil, fmt.Errorf("scan card definitions: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read card definitions: %w", err)
	}

	deckRows, err := db.QueryContext(ctx, sqliteSelectDeckEntries, deck)
	if err != nil {
		return nil, fmt.Errorf("query deck %q: %w", deck, err)
	}
	defer deckRows.Close()

	decks := make(map[card.PlayerID][]DeckEntry, 2)
	for deckRows.Next() {
		var (
			player string
			entry  DeckEntry
		)
		if err := deckRows.Scan(&player, &entry.CardID, &entry.Copies); err != nil {
			return nil, fmt.Errorf("scan deck %q: %w", deck, err)
		}
		id, err := card.ParsePlayerID(player)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", deck, err)
		}
		decks[id] = append(decks[id], entry)
	}
	if err := deckRows.Err(); err != nil {
		return nil, fmt.Errorf("read deck %q: %w", deck, err)
	}
	return NewStatic(defs, decks, rng)
}
