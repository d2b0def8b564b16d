package mechanics

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/zones"
	"go.uber.org/zap"
)

// DrawCardListener receives every card moved from a library to a hand.
type DrawCardListener interface {
	OnDrawCard(id card.PlayerID, c *card.Instance)
}

// HandFullListener is notified when a draw is refused because the hand is
// at its maximum size.
type HandFullListener interface {
	OnHandFull(id card.PlayerID, hand *zones.Hand)
}

// HandLibrary moves cards from a player's library into their hand.
type HandLibrary struct{ base }

func NewHandLibrary(s *Session) *HandLibrary { return &HandLibrary{base{s}} }

// DrawCard draws the top card of id's library. It is refused when the game
// is over, the library is empty or the hand is full.
func (m *HandLibrary) DrawCard(id card.PlayerID) bool {
	s := m.session
	hand := s.Hand(id)
	if s.Finished {
		return m.reject("draw_card", "game finished", zap.Stringer("player", id))
	}
	if s.Library.IsEmpty(id) {
		return m.reject("draw_card", "library empty", zap.Stringer("player", id))
	}
	if hand.IsFull() {
		events.Notify(m.dispatcher(), func(l HandFullListener) { l.OnHandFull(id, hand) })
		return m.reject("draw_card", "hand full",
			zap.Stringer("player", id),
			zap.Int("max_hand_size", hand.MaxHandSize()),
		)
	}

	c, _ := s.Library.Draw(id)
	hand.Add(c)

	events.Notify(m.dispatcher(), func(l DrawCardListener) { l.OnDrawCard(id, c) })
	return true
}
