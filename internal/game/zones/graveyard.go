package zones

import (
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/collection"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// CreateGraveyardListener is notified when the graveyard is constructed.
type CreateGraveyardListener interface {
	OnCreateGraveyard(graveyard *Graveyard)
}

// Graveyard is the single pile shared by both players. It only grows during
// play and is cleared on reset.
type Graveyard struct {
	cards *collection.List[*card.Instance]
}

// NewGraveyard creates an empty graveyard and announces it on dispatcher.
func NewGraveyard(rng *rand.Rand, dispatcher *events.Dispatcher) *Graveyard {
	g := &Graveyard{cards: collection.New[*card.Instance](rng)}
	events.Notify(dispatcher, func(l CreateGraveyardListener) { l.OnCreateGraveyard(g) })
	return g
}

func (g *Graveyard) Size() int { return g.cards.Len() }

func (g *Graveyard) AddCard(c *card.Instance) { g.cards.Add(c) }

func (g *Graveyard) Has(c *card.Instance) bool { return g.cards.Has(c) }

// Cards returns a snapshot in the order cards arrived.
func (g *Graveyard) Cards() []*card.Instance { return g.cards.Snapshot() }

func (g *Graveyard) Clear() { g.cards.Clear() }
