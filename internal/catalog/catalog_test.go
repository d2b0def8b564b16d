package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/hexcardgame/hexcard-server-go/internal/config"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() []card.Definition {
	return []card.Definition{
		{ID: "bolt", Name: "Bolt", Description: "Deal 3", Visual: "red"},
		{ID: "ward", Name: "Ward", Description: "Block 2", Visual: "blue"},
		{ID: "grow", Name: "Grow", Description: "Gain 1", Visual: "green"},
	}
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(5, 6)) }

func TestNewStaticDefaultsToOneOfEach(t *testing.T) {
	c, err := NewStatic(testDefs(), nil, seeded())
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	for _, id := range []card.PlayerID{card.User, card.Ai} {
		lib := c.Library(id)
		require.Len(t, lib, 3)
		assert.Equal(t, "bolt", lib[0].ID)
	}
}

func TestNewStaticExpandsDeckLists(t *testing.T) {
	c, err := NewStatic(testDefs(), map[card.PlayerID][]DeckEntry{
		card.User: {{CardID: "bolt", Copies: 3}, {CardID: "ward", Copies: 1}},
	}, seeded())
	require.NoError(t, err)

	lib := c.Library(card.User)
	require.Len(t, lib, 4)
	assert.Same(t, lib[0], lib[1], "copies share one definition")
	assert.Equal(t, "ward", lib[3].ID)
	assert.Len(t, c.Library(card.Ai), 3)
}

func TestNewStaticLibraryIsFreshSlice(t *testing.T) {
	c, err := NewStatic(testDefs(), nil, seeded())
	require.NoError(t, err)

	lib := c.Library(card.User)
	lib[0] = nil
	assert.NotNil(t, c.Library(card.User)[0])
}

func TestNewStaticErrors(t *testing.T) {
	_, err := NewStatic(nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewStatic([]card.Definition{{Name: "no id"}}, nil, nil)
	assert.Error(t, err)

	_, err = NewStatic([]card.Definition{{ID: "a"}, {ID: "a"}}, nil, nil)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewStatic(testDefs(), map[card.PlayerID][]DeckEntry{
		card.Ai: {{CardID: "missing", Copies: 1}},
	}, nil)
	assert.ErrorContains(t, err, "unknown card")

	_, err = NewStatic(testDefs(), map[card.PlayerID][]DeckEntry{
		card.Ai: {{CardID: "bolt", Copies: 0}},
	}, nil)
	assert.ErrorContains(t, err, "copies must be positive")
}

func TestStaticRandomDefinition(t *testing.T) {
	c, err := NewStatic(testDefs(), nil, seeded())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		def := c.RandomDefinition()
		got, ok := c.Definition(def.ID)
		require.True(t, ok)
		assert.Same(t, got, def)
	}
}

// fakeRows serves canned rows through the pgx.Rows interface.
type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Values() ([]any, error) { return r.data[r.idx-1], nil }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d columns, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		default:
			return fmt.Errorf("scan: unsupported dest %T", d)
		}
	}
	return nil
}

type fakeQuerier struct {
	results map[string]*fakeRows
	err     error
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.results[sql], nil
}

func TestLoadPostgres(t *testing.T) {
	q := &fakeQuerier{results: map[string]*fakeRows{
		selectDefinitions: {data: [][]any{
			{"bolt", "Bolt", "Deal 3", "red"},
			{"ward", "Ward", "Block 2", "blue"},
		}},
		selectDeckEntries: {data: [][]any{
			{"ai", "ward", 2},
			{"user", "bolt", 4},
		}},
	}}

	c, err := LoadPostgres(context.Background(), q, "starter", seeded())
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Library(card.User), 4)
	assert.Len(t, c.Library(card.Ai), 2)
	assert.Equal(t, "ward", c.Library(card.Ai)[0].ID)
}

func TestLoadPostgresErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadPostgres(context.Background(), &fakeQuerier{err: boom}, "starter", nil)
	assert.ErrorIs(t, err, boom)

	q := &fakeQuerier{results: map[string]*fakeRows{
		selectDefinitions: {data: [][]any{{"bolt", "Bolt", "", ""}}},
		selectDeckEntries: {data: [][]any{{"spectator", "bolt", 1}}},
	}}
	_, err = LoadPostgres(context.Background(), q, "starter", nil)
	assert.ErrorContains(t, err, "unknown player id")
}

func TestBuiltin(t *testing.T) {
	c := Builtin(seeded())

	assert.Equal(t, len(builtinCards), c.Len())
	assert.Len(t, c.Library(card.User), len(builtinCards)*builtinCopies)
	assert.Len(t, c.Library(card.Ai), len(builtinCards)*builtinCopies)
}

func TestFromConfig(t *testing.T) {
	cfg := config.CatalogConfig{
		Cards: []config.CardConfig{
			{ID: "bolt", Name: "Bolt"},
			{ID: "ward", Name: "Ward"},
		},
		Decks: map[string][]config.Copy{
			"user": {{CardID: "bolt", Copies: 3}},
		},
	}

	c, err := FromConfig(cfg, seeded())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Library(card.User), 3)
	assert.Len(t, c.Library(card.Ai), 2, "missing deck falls back to one of each")

	empty, err := FromConfig(config.CatalogConfig{}, seeded())
	require.NoError(t, err)
	assert.Equal(t, len(builtinCards), empty.Len())

	cfg.Decks = map[string][]config.Copy{"dealer": {{CardID: "bolt", Copies: 1}}}
	_, err = FromConfig(cfg, seeded())
	assert.ErrorContains(t, err, "catalog.decks")

	cfg.Decks = map[string][]config.Copy{"ai": {{CardID: "ghost", Copies: 1}}}
	_, err = FromConfig(cfg, seeded())
	assert.ErrorContains(t, err, "ghost")
}
