package zones

import (
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/collection"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// CreateHandListener is notified when a hand is constructed.
type CreateHandListener interface {
	OnCreateHand(hand *Hand, id card.PlayerID)
}

// Hand holds the playable cards of one player, bounded by MaxHandSize.
// Removal is unordered: the last card takes the slot of the removed one.
type Hand struct {
	id      card.PlayerID
	maxSize int
	cards   *collection.List[*card.Instance]
}

// NewHand creates an empty hand and announces it on dispatcher.
func NewHand(id card.PlayerID, maxSize int, rng *rand.Rand, dispatcher *events.Dispatcher) *Hand {
	h := &Hand{
		id:      id,
		maxSize: maxSize,
		cards:   collection.New[*card.Instance](rng),
	}
	events.Notify(dispatcher, func(l CreateHandListener) { l.OnCreateHand(h, id) })
	return h
}

func (h *Hand) ID() card.PlayerID { return h.id }

func (h *Hand) MaxHandSize() int { return h.maxSize }

func (h *Hand) Len() int { return h.cards.Len() }

// IsFull reports whether another card would exceed MaxHandSize.
func (h *Hand) IsFull() bool { return h.cards.Len() >= h.maxSize }

// Add appends c. The caller is responsible for checking IsFull.
func (h *Hand) Add(c *card.Instance) { h.cards.Add(c) }

func (h *Hand) Has(c *card.Instance) bool { return h.cards.Has(c) }

// Remove takes c out of the hand, returning false if it was not held.
func (h *Hand) Remove(c *card.Instance) bool { return h.cards.RemoveUnordered(c) }

func (h *Hand) Get(index int) *card.Instance { return h.cards.Get(index) }

// Cards returns a snapshot in display order.
func (h *Hand) Cards() []*card.Instance { return h.cards.Snapshot() }

func (h *Hand) Clear() { h.cards.Clear() }
