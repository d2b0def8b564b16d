package mechanics

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// StartPlayerTurnListener is notified when the active player's turn opens.
type StartPlayerTurnListener interface {
	OnStartPlayerTurn(player *rules.Player)
}

// FinishPlayerTurnListener is notified after the turn has passed.
type FinishPlayerTurnListener interface {
	OnFinishPlayerTurn(previous, next *rules.Player)
}

// StartPlayerTurn opens the active player's turn.
type StartPlayerTurn struct{ base }

func NewStartPlayerTurn(s *Session) *StartPlayerTurn { return &StartPlayerTurn{base{s}} }

func (m *StartPlayerTurn) Execute() bool {
	s := m.session
	if s.Finished {
		return m.reject("start_player_turn", "game finished")
	}
	if !s.Fsm.Is(rules.PhasePlayerTurn) {
		return m.reject("start_player_turn", "wrong phase", zap.Stringer("phase", s.Fsm.Current()))
	}
	if s.TurnInProgress {
		return m.reject("start_player_turn", "turn already in progress")
	}

	s.TurnInProgress = true
	active := s.Turn.Active()
	events.Notify(m.dispatcher(), func(l StartPlayerTurnListener) { l.OnStartPlayerTurn(active) })
	return true
}

// FinishPlayerTurn closes the current turn and hands it to the other player.
type FinishPlayerTurn struct{ base }

func NewFinishPlayerTurn(s *Session) *FinishPlayerTurn { return &FinishPlayerTurn{base{s}} }

func (m *FinishPlayerTurn) Execute() bool {
	s := m.session
	if s.Finished {
		return m.reject("finish_player_turn", "game finished")
	}
	if !s.Fsm.Is(rules.PhasePlayerTurn) {
		return m.reject("finish_player_turn", "wrong phase", zap.Stringer("phase", s.Fsm.Current()))
	}

	previous := s.Turn.Active()
	s.TurnInProgress = false
	s.Fsm.Transition(rules.PhaseTurnResolution)

	// an observer of the resolution phase may have ended the game
	if s.Finished {
		return true
	}

	s.Turn.AdvanceTurn()
	s.Fsm.Transition(rules.PhasePlayerTurn)

	next := s.Turn.Active()
	events.Notify(m.dispatcher(), func(l FinishPlayerTurnListener) { l.OnFinishPlayerTurn(previous, next) })
	return true
}
