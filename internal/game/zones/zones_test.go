package zones

import (
	"math/rand/v2"
	"testing"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creationRecorder struct {
	hands      []card.PlayerID
	graveyards int
	libraries  int
	pools      int
}

func (r *creationRecorder) OnCreateHand(_ *Hand, id card.PlayerID) { r.hands = append(r.hands, id) }
func (r *creationRecorder) OnCreateGraveyard(*Graveyard)           { r.graveyards++ }
func (r *creationRecorder) OnCreateLibrary(*Library)               { r.libraries++ }
func (r *creationRecorder) OnCreatePool(*Pool)                     { r.pools++ }

type fixedSource struct{ def *card.Definition }

func (s fixedSource) RandomDefinition() *card.Definition { return s.def }

func rng() *rand.Rand { return rand.New(rand.NewPCG(3, 4)) }

func deck(n int) []*card.Definition {
	out := make([]*card.Definition, n)
	for i := range out {
		out[i] = &card.Definition{ID: "d", Name: "Card"}
	}
	return out
}

func TestZonesAnnounceCreation(t *testing.T) {
	d := events.NewDispatcher()
	rec := &creationRecorder{}
	d.Subscribe(rec)

	NewHand(card.User, 10, rng(), d)
	NewHand(card.Ai, 10, rng(), d)
	NewGraveyard(rng(), d)
	NewLibrary(map[card.PlayerID][]*card.Definition{card.User: deck(1)}, nil, rng(), d)
	NewPool(3, d)

	assert.Equal(t, []card.PlayerID{card.User, card.Ai}, rec.hands)
	assert.Equal(t, 1, rec.graveyards)
	assert.Equal(t, 1, rec.libraries)
	assert.Equal(t, 1, rec.pools)
}

func TestHand(t *testing.T) {
	h := NewHand(card.User, 2, rng(), events.NewDispatcher())
	a := card.NewInstance(&card.Definition{Name: "A"})
	b := card.NewInstance(&card.Definition{Name: "B"})

	assert.Equal(t, card.User, h.ID())
	assert.Equal(t, 2, h.MaxHandSize())
	assert.False(t, h.IsFull())

	h.Add(a)
	h.Add(b)
	assert.True(t, h.IsFull())
	assert.True(t, h.Has(a))

	require.True(t, h.Remove(a))
	assert.False(t, h.Remove(a))
	assert.Equal(t, []*card.Instance{b}, h.Cards())

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestGraveyard(t *testing.T) {
	g := NewGraveyard(rng(), events.NewDispatcher())
	a := card.NewInstance(&card.Definition{Name: "A"})
	b := card.NewInstance(&card.Definition{Name: "B"})

	g.AddCard(a)
	g.AddCard(b)
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, []*card.Instance{a, b}, g.Cards())
	assert.True(t, g.Has(b))

	g.Clear()
	assert.Equal(t, 0, g.Size())
}

func TestLibraryDrawDepletes(t *testing.T) {
	lib := NewLibrary(map[card.PlayerID][]*card.Definition{
		card.User: deck(3),
		card.Ai:   deck(1),
	}, nil, rng(), events.NewDispatcher())

	require.Equal(t, 3, lib.Size(card.User))
	seen := map[*card.Instance]bool{}
	for i := 0; i < 3; i++ {
		c, ok := lib.Draw(card.User)
		require.True(t, ok)
		assert.False(t, seen[c], "each draw yields a distinct instance")
		assert.False(t, lib.Has(card.User, c))
		seen[c] = true
		assert.Equal(t, 2-i, lib.Size(card.User))
	}

	c, ok := lib.Draw(card.User)
	assert.False(t, ok)
	assert.Nil(t, c)
	assert.True(t, lib.IsEmpty(card.User))
	assert.Equal(t, 1, lib.Size(card.Ai), "piles are independent")
}

func TestLibraryDuplicatesAreDistinctInstances(t *testing.T) {
	def := &card.Definition{Name: "Twin"}
	lib := NewLibrary(map[card.PlayerID][]*card.Definition{
		card.User: {def, def},
	}, nil, rng(), events.NewDispatcher())

	cards := lib.Cards(card.User)
	require.Len(t, cards, 2)
	assert.NotSame(t, cards[0], cards[1])
	assert.Same(t, cards[0].Data, cards[1].Data)
}

func TestLibraryShuffleKeepsCards(t *testing.T) {
	lib := NewLibrary(map[card.PlayerID][]*card.Definition{card.User: deck(20)}, nil, rng(), events.NewDispatcher())
	before := lib.Cards(card.User)
	lib.ShuffleAll()
	assert.ElementsMatch(t, before, lib.Cards(card.User))
}

func TestLibraryUnknownPlayerPanics(t *testing.T) {
	lib := NewLibrary(map[card.PlayerID][]*card.Definition{card.User: deck(1)}, nil, rng(), events.NewDispatcher())
	assert.Panics(t, func() { lib.Size(card.Ai) })
	assert.Panics(t, func() { lib.RandomDefinition() }, "no source configured")
}

func TestLibraryRandomDefinitionUsesSource(t *testing.T) {
	def := &card.Definition{Name: "Shared"}
	lib := NewLibrary(map[card.PlayerID][]*card.Definition{card.User: deck(2)}, fixedSource{def}, rng(), events.NewDispatcher())
	assert.Same(t, def, lib.RandomDefinition())
	assert.Equal(t, 2, lib.Size(card.User), "shared source leaves piles alone")
}

func TestPool(t *testing.T) {
	p := NewPool(3, events.NewDispatcher())
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, []int{0, 1, 2}, p.Positions())
	assert.Equal(t, 0, p.Filled())
	assert.False(t, p.Has(nil))

	c := card.NewInstance(&card.Definition{Name: "P"})
	p.AddCardAt(c, 1)
	assert.Same(t, c, p.Get(1))
	assert.Nil(t, p.Get(0))
	assert.Equal(t, 1, p.Filled())
	assert.True(t, p.Has(c))
	assert.Equal(t, []*card.Instance{nil, c, nil}, p.Cards())

	assert.Panics(t, func() { p.AddCardAt(c, 3) })
	assert.Panics(t, func() { p.Get(-1) })

	p.Clear()
	assert.Equal(t, 0, p.Filled())
}
