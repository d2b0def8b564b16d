package mechanics

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"go.uber.org/zap"
)

// PlayCardListener receives every card played from a hand.
type PlayCardListener interface {
	OnPlayCard(id card.PlayerID, c *card.Instance)
}

// DiscardCardListener receives every card that lands in the graveyard.
type DiscardCardListener interface {
	OnDiscardCard(c *card.Instance)
}

// HandGraveyard plays cards. A played card goes straight to the graveyard;
// there is no board in this core.
type HandGraveyard struct{ base }

func NewHandGraveyard(s *Session) *HandGraveyard { return &HandGraveyard{base{s}} }

// PlayCard succeeds only if the game is running, it is id's turn and c is in
// id's hand. Listeners see the played notification before the discard.
func (m *HandGraveyard) PlayCard(id card.PlayerID, c *card.Instance) bool {
	s := m.session
	hand := s.Hand(id)
	if !s.Started {
		return m.reject("play_card", "game not started", zap.Stringer("player", id))
	}
	if s.Finished {
		return m.reject("play_card", "game finished", zap.Stringer("player", id))
	}
	if !s.Turn.IsMyTurn(id) {
		return m.reject("play_card", "not player's turn", zap.Stringer("player", id))
	}
	if c == nil || !hand.Has(c) {
		return m.reject("play_card", "card not in hand", zap.Stringer("player", id))
	}

	hand.Remove(c)
	s.Graveyard.AddCard(c)

	events.Notify(m.dispatcher(), func(l PlayCardListener) { l.OnPlayCard(id, c) })
	events.Notify(m.dispatcher(), func(l DiscardCardListener) { l.OnDiscardCard(c) })
	return true
}
