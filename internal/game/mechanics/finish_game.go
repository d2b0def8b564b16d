package mechanics

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// FinishGameListener receives the winner once the game is over.
type FinishGameListener interface {
	OnFinishGame(winner *rules.Player)
}

// FinishGame latches a winner and moves the battle to PhaseGameOver. It
// accepts any session player, from any phase.
type FinishGame struct{ base }

func NewFinishGame(s *Session) *FinishGame { return &FinishGame{base{s}} }

// Execute is idempotent: once a winner is latched later calls change nothing.
func (m *FinishGame) Execute(winner *rules.Player) bool {
	s := m.session
	if winner == nil {
		panic("mechanics: finish game needs a winner")
	}
	if s.Finished {
		return m.reject("finish_game", "already finished")
	}

	s.Finished = true
	s.Winner = winner
	s.TurnInProgress = false
	s.Fsm.Transition(rules.PhaseGameOver)

	s.logger().Info("game finished", zap.Stringer("winner", winner.ID))
	events.Notify(m.dispatcher(), func(l FinishGameListener) { l.OnFinishGame(winner) })
	return true
}
