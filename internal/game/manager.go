package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"go.uber.org/zap"
)

// BeginSessionListener receives the id of a session before any of its
// entities are created.
type BeginSessionListener interface {
	OnBeginSession(id string)
}

// RestartGameListener is notified when previous is about to be replaced by
// the session nextID. It runs before the new session is built, so creation
// notifications of the new session always follow it.
type RestartGameListener interface {
	OnRestartGame(previous *Game, nextID string)
}

// Factory builds a fresh session with the given id on the given dispatcher.
type Factory func(dispatcher *events.Dispatcher, sessionID string) *Game

// Manager owns the current session and replaces it wholesale on restart.
// All access goes through Do so concurrent callers act as a single writer.
// Listeners run under the manager lock and must not call back into it.
type Manager struct {
	mu         sync.Mutex
	dispatcher *events.Dispatcher
	factory    Factory
	current    *Game
	logger     *zap.Logger
}

// NewManager builds the first session. Subscribers registered on dispatcher
// before the call observe its creation notifications.
func NewManager(dispatcher *events.Dispatcher, factory Factory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		dispatcher: dispatcher,
		factory:    factory,
		logger:     logger,
	}
	m.current = m.build(uuid.NewString())
	return m
}

func (m *Manager) build(id string) *Game {
	events.Notify(m.dispatcher, func(l BeginSessionListener) { l.OnBeginSession(id) })
	return m.factory(m.dispatcher, id)
}

// Do runs fn against the current session while holding the manager lock.
func (m *Manager) Do(fn func(g *Game)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.current)
}

// Current returns the current session. Callers that mutate it must use Do.
func (m *Manager) Current() *Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Restart discards the current session and builds a new one on the same
// dispatcher. Nothing of the old session is carried over.
func (m *Manager) Restart() *Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.current
	next := uuid.NewString()
	events.Notify(m.dispatcher, func(l RestartGameListener) { l.OnRestartGame(previous, next) })

	m.current = m.build(next)
	m.logger.Info("game restarted",
		zap.String("previous_session_id", previous.ID()),
		zap.String("session_id", m.current.ID()),
	)
	return m.current
}
