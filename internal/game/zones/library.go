package zones

import (
	"fmt"
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/collection"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// CreateLibraryListener is notified when the library is constructed.
type CreateLibraryListener interface {
	OnCreateLibrary(library *Library)
}

// DefinitionSource hands out random card definitions for reveals that do
// not come from a player's pile.
type DefinitionSource interface {
	RandomDefinition() *card.Definition
}

// Library keeps one draw pile per player plus the shared definition source
// used to reveal the pool. Piles are only ever depleted within a game.
type Library struct {
	piles  map[card.PlayerID]*collection.List[*card.Instance]
	source DefinitionSource
}

// NewLibrary builds a pile of fresh card instances for every entry of decks
// and announces the library on dispatcher.
func NewLibrary(decks map[card.PlayerID][]*card.Definition, source DefinitionSource, rng *rand.Rand, dispatcher *events.Dispatcher) *Library {
	l := &Library{
		piles:  make(map[card.PlayerID]*collection.List[*card.Instance], len(decks)),
		source: source,
	}
	for id, defs := range decks {
		pile := collection.WithCapacity[*card.Instance](max(len(defs), collection.DefaultCapacity), rng)
		for _, def := range defs {
			pile.Add(card.NewInstance(def))
		}
		l.piles[id] = pile
	}
	events.Notify(dispatcher, func(lst CreateLibraryListener) { lst.OnCreateLibrary(l) })
	return l
}

func (l *Library) pile(id card.PlayerID) *collection.List[*card.Instance] {
	pile, ok := l.piles[id]
	if !ok {
		panic(fmt.Sprintf("zones: no library for player %s", id))
	}
	return pile
}

// Size returns the number of cards left in the pile of id.
func (l *Library) Size(id card.PlayerID) int { return l.pile(id).Len() }

func (l *Library) IsEmpty(id card.PlayerID) bool { return l.pile(id).Len() == 0 }

func (l *Library) Has(id card.PlayerID, c *card.Instance) bool { return l.pile(id).Has(c) }

// Cards returns a snapshot of the pile of id, top card last.
func (l *Library) Cards(id card.PlayerID) []*card.Instance { return l.pile(id).Snapshot() }

// Draw removes the top card of the pile of id. It reports false when the
// pile is empty.
func (l *Library) Draw(id card.PlayerID) (*card.Instance, bool) {
	pile := l.pile(id)
	if pile.Len() == 0 {
		return nil, false
	}
	return pile.RemoveAtUnordered(pile.Len() - 1), true
}

// Shuffle randomizes the pile of id.
func (l *Library) Shuffle(id card.PlayerID) { l.pile(id).Shuffle() }

// ShuffleAll randomizes every pile.
func (l *Library) ShuffleAll() {
	for _, pile := range l.piles {
		pile.Shuffle()
	}
}

// RandomDefinition returns a definition from the shared source. It does not
// touch any pile.
func (l *Library) RandomDefinition() *card.Definition {
	if l.source == nil {
		panic("zones: library has no definition source")
	}
	return l.source.RandomDefinition()
}
