// Package catalog provides the read-only card definitions a game is built
// from.
package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
)

// ErrEmptyCatalog is returned when a catalog would hold no definitions.
var ErrEmptyCatalog = errors.New("catalog has no card definitions")

// Catalog is what a game consumes: a deck list per player and a random
// definition for reveals.
type Catalog interface {
	Library(id card.PlayerID) []*card.Definition
	RandomDefinition() *card.Definition
}

// DeckEntry is one line of a deck list.
type DeckEntry struct {
	CardID string
	Copies int
}

// Static is an in-memory catalog.
type Static struct {
	defs  []*card.Definition
	byID  map[string]*card.Definition
	decks map[card.PlayerID][]*card.Definition
	rng   *rand.Rand
}

// NewStatic builds a catalog from definitions and per-player deck lists. A
// player without a deck list gets one copy of every definition.
func NewStatic(defs []card.Definition, decks map[card.PlayerID][]DeckEntry, rng *rand.Rand) (*Static, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	c := &Static{
		defs:  make([]*card.Definition, 0, len(defs)),
		byID:  make(map[string]*card.Definition, len(defs)),
		decks: make(map[card.PlayerID][]*card.Definition, 2),
		rng:   rng,
	}
	for i := range defs {
		def := defs[i]
		if def.ID == "" {
			return nil, fmt.Errorf("card definition %d has no id", i)
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate card definition %q", def.ID)
		}
		c.defs = append(c.defs, &def)
		c.byID[def.ID] = &def
	}

	for _, id := range []card.PlayerID{card.User, card.Ai} {
		entries, ok := decks[id]
		if !ok || len(entries) == 0 {
			c.decks[id] = append([]*card.Definition(nil), c.defs...)
			continue
		}
		deck, err := c.expand(entries)
		if err != nil {
			return nil, fmt.Errorf("deck for %s: %w", id, err)
		}
		c.decks[id] = deck
	}
	return c, nil
}

func (c *Static) expand(entries []DeckEntry) ([]*card.Definition, error) {
	var deck []*card.Definition
	for _, e := range entries {
		def, ok := c.byID[e.CardID]
		if !ok {
			return nil, fmt.Errorf("unknown card %q", e.CardID)
		}
		if e.Copies < 1 {
			return nil, fmt.Errorf("card %q: copies must be positive, got %d", e.CardID, e.Copies)
		}
		for i := 0; i < e.Copies; i++ {
			deck = append(deck, def)
		}
	}
	return deck, nil
}

// Library returns a fresh slice of the deck of id. The definitions it
// points to are shared.
func (c *Static) Library(id card.PlayerID) []*card.Definition {
	return append([]*card.Definition(nil), c.decks[id]...)
}

// RandomDefinition picks any definition of the catalog.
func (c *Static) RandomDefinition() *card.Definition {
	return c.defs[c.rng.IntN(len(c.defs))]
}

// Definition looks a definition up by id.
func (c *Static) Definition(id string) (*card.Definition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// Len returns the number of distinct definitions.
func (c *Static) Len() int {
	return len(c.defs)
}
