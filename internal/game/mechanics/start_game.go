package mechanics

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// PreStartGameListener is notified once the session has been prepared.
type PreStartGameListener interface {
	OnPreStartGame()
}

// StartGameListener receives the starter player once the game has started.
type StartGameListener interface {
	OnStartGame(starter *rules.Player)
}

// RevealPoolListener receives the pool contents by position after reveal.
type RevealPoolListener interface {
	OnRevealPool(pool []*card.Instance)
}

// PreStartGame shuffles the libraries before anything is drawn.
type PreStartGame struct{ base }

func NewPreStartGame(s *Session) *PreStartGame { return &PreStartGame{base{s}} }

// Execute runs once, and only while the battle is still in PhasePreGame.
func (m *PreStartGame) Execute() bool {
	s := m.session
	if s.PreStarted {
		return m.reject("pre_start_game", "already prepared")
	}
	if !s.Fsm.Is(rules.PhasePreGame) {
		return m.reject("pre_start_game", "wrong phase", zap.Stringer("phase", s.Fsm.Current()))
	}

	s.PreStarted = true
	s.Library.ShuffleAll()

	events.Notify(m.dispatcher(), func(l PreStartGameListener) { l.OnPreStartGame() })
	return true
}

// StartGame decides the starter, deals starting hands and reveals the pool.
type StartGame struct {
	base
	draw *HandLibrary
}

func NewStartGame(s *Session, draw *HandLibrary) *StartGame {
	return &StartGame{base: base{s}, draw: draw}
}

// Execute is a no-op once the game has started or finished.
func (m *StartGame) Execute() bool {
	s := m.session
	if s.Started {
		return m.reject("start_game", "already started")
	}
	if s.Finished {
		return m.reject("start_game", "game finished")
	}

	s.Started = true
	s.Fsm.Transition(rules.PhaseStarting)
	s.Turn.DecideStarter()

	// A draw or reveal observer may finish the game re-entrantly; the
	// start sequence stops there.
	m.drawStartingHands()
	if s.Finished {
		return true
	}
	m.revealPool()
	if s.Finished {
		return true
	}

	s.Fsm.Transition(rules.PhasePlayerTurn)

	starter := s.Turn.Starter()
	s.logger().Info("game started", zap.Stringer("starter", starter.ID))
	events.Notify(m.dispatcher(), func(l StartGameListener) { l.OnStartGame(starter) })
	return true
}

func (m *StartGame) drawStartingHands() {
	for _, player := range m.session.Turn.Players() {
		for i := 0; i < m.session.StartingHandCount; i++ {
			if m.session.Finished {
				return
			}
			m.draw.DrawCard(player.ID)
		}
	}
}

// revealPool fills every pool position from the shared definition source,
// not from either player's pile.
func (m *StartGame) revealPool() {
	s := m.session
	for _, position := range s.Pool.Positions() {
		def := s.Library.RandomDefinition()
		s.Pool.AddCardAt(card.NewInstance(def), position)
	}
	snapshot := s.Pool.Cards()
	events.Notify(m.dispatcher(), func(l RevealPoolListener) { l.OnRevealPool(snapshot) })
}
