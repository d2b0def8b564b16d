package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hexcardgame/hexcard-server-go/internal/catalog"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type statement struct {
	sql  string
	args []any
	tx   int
}

// fakeDB records statements; tx is 0 outside a transaction.
type fakeDB struct {
	statements []statement
	txs        int
	commits    int
	rollbacks  int
	failOn     string
}

func (db *fakeDB) exec(tx int, sql string, args []any) (pgconn.CommandTag, error) {
	if db.failOn != "" && strings.Contains(sql, db.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	db.statements = append(db.statements, statement{sql: sql, args: args, tx: tx})
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.exec(0, sql, args)
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	db.txs++
	return &fakeTx{db: db, id: db.txs}, nil
}

type fakeTx struct {
	pgx.Tx
	db   *fakeDB
	id   int
	done bool
}

func (tx *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return tx.db.exec(tx.id, sql, args)
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.done = true
	tx.db.commits++
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	tx.db.rollbacks++
	return nil
}

func (db *fakeDB) count(prefix string) int {
	n := 0
	for _, s := range db.statements {
		if strings.HasPrefix(strings.TrimSpace(s.sql), prefix) {
			n++
		}
	}
	return n
}

func testDefinitions(n int) []card.Definition {
	defs := make([]card.Definition, n)
	for i := range defs {
		defs[i] = card.Definition{ID: string(rune('a' + i)), Name: "Card"}
	}
	return defs
}

func TestImporterBatchesDefinitions(t *testing.T) {
	db := &fakeDB{}
	imp := &importer{db: db, batchSize: 2, logger: zaptest.NewLogger(t)}

	require.NoError(t, imp.Run(context.Background(), testDefinitions(5), nil, false))

	assert.Equal(t, catalog.Schema, db.statements[0].sql)
	assert.Equal(t, 3, db.txs)
	assert.Equal(t, 3, db.commits)
	assert.Equal(t, 5, db.count("INSERT INTO card_definitions"))
	assert.Zero(t, db.count("TRUNCATE"))
}

func TestImporterReplacesDecks(t *testing.T) {
	db := &fakeDB{}
	imp := &importer{db: db, batchSize: 10, logger: zaptest.NewLogger(t)}
	decks := []deckRow{
		{Deck: "starter", Player: card.User, Position: 0, CardID: "a", Copies: 3},
		{Deck: "starter", Player: card.User, Position: 1, CardID: "b", Copies: 1},
		{Deck: "starter", Player: card.Ai, Position: 0, CardID: "a", Copies: 4},
	}

	require.NoError(t, imp.Run(context.Background(), testDefinitions(2), decks, true))

	assert.Equal(t, 1, db.count("TRUNCATE"))
	assert.Equal(t, 2, db.count("DELETE FROM deck_entries"))
	assert.Equal(t, 3, db.count("INSERT INTO deck_entries"))
	assert.Equal(t, 2, db.commits)

	last := db.statements[len(db.statements)-1]
	assert.Equal(t, []any{"starter", "AI", 0, "a", 4}, last.args)
	assert.Equal(t, 2, last.tx)
}

func TestImporterRollsBackFailedBatch(t *testing.T) {
	db := &fakeDB{failOn: "INSERT INTO card_definitions"}
	imp := &importer{db: db, batchSize: 2, logger: zaptest.NewLogger(t)}

	err := imp.Run(context.Background(), testDefinitions(3), nil, false)

	assert.ErrorContains(t, err, `insert card "a"`)
	assert.Equal(t, 1, db.count("CREATE TABLE IF NOT EXISTS card_definitions"), "schema applied before the batch")
	assert.Equal(t, 1, db.rollbacks)
	assert.Zero(t, db.commits)
}
