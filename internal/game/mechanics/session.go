// Package mechanics holds the discrete operations that advance a game: each
// step checks its preconditions, mutates the session, then notifies
// observers. A step invoked when its preconditions do not hold does nothing
// and reports false.
package mechanics

import (
	"fmt"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"github.com/hexcardgame/hexcard-server-go/internal/game/zones"
	"go.uber.org/zap"
)

// Session is the mutable state the mechanics operate on. It is owned by a
// single caller; nothing here is safe for concurrent use. Logger already
// carries the session_id field.
type Session struct {
	ID                string
	Dispatcher        *events.Dispatcher
	Logger            *zap.Logger
	StartingHandCount int

	Turn      *rules.TurnLogic
	Fsm       *rules.BattleFsm
	Hands     [2]*zones.Hand
	Library   *zones.Library
	Graveyard *zones.Graveyard
	Pool      *zones.Pool

	PreStarted     bool
	Started        bool
	Finished       bool
	TurnInProgress bool
	Winner         *rules.Player
}

// Hand returns the hand of id. An unknown id is a caller bug.
func (s *Session) Hand(id card.PlayerID) *zones.Hand {
	for _, h := range s.Hands {
		if h != nil && h.ID() == id {
			return h
		}
	}
	panic(fmt.Sprintf("mechanics: no hand for player %s", id))
}

func (s *Session) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// base is embedded by every step.
type base struct {
	session *Session
}

func (b base) dispatcher() *events.Dispatcher { return b.session.Dispatcher }

// reject logs a guard rejection and returns false so callers can
// `return b.reject(...)`.
func (b base) reject(step, reason string, fields ...zap.Field) bool {
	fields = append([]zap.Field{
		zap.String("step", step),
		zap.String("reason", reason),
	}, fields...)
	b.session.logger().Debug("mechanics step rejected", fields...)
	return false
}
