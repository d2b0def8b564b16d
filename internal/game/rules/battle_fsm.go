package rules

import (
	"fmt"

	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// Phase is the stage of a battle that gates which mechanics are legal.
type Phase int

const (
	PhasePreGame Phase = iota
	PhaseStarting
	PhasePlayerTurn
	PhaseTurnResolution
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhasePreGame:        "PRE_GAME",
	PhaseStarting:       "STARTING",
	PhasePlayerTurn:     "PLAYER_TURN",
	PhaseTurnResolution: "TURN_RESOLUTION",
	PhaseGameOver:       "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// PhaseChangedListener is notified after every accepted transition.
type PhaseChangedListener interface {
	OnPhaseChanged(from, to Phase)
}

// phaseEdges lists the phases reachable from each phase. GameOver has none.
var phaseEdges = map[Phase][]Phase{
	PhasePreGame:        {PhaseStarting, PhaseGameOver},
	PhaseStarting:       {PhasePlayerTurn, PhaseGameOver},
	PhasePlayerTurn:     {PhaseTurnResolution, PhaseGameOver},
	PhaseTurnResolution: {PhasePlayerTurn, PhaseGameOver},
}

// BattleFsm tracks the current battle phase. Only the mechanics pipeline
// drives it.
type BattleFsm struct {
	current    Phase
	dispatcher *events.Dispatcher
}

// NewBattleFsm starts in PhasePreGame.
func NewBattleFsm(dispatcher *events.Dispatcher) *BattleFsm {
	return &BattleFsm{current: PhasePreGame, dispatcher: dispatcher}
}

// Current returns the phase in progress.
func (f *BattleFsm) Current() Phase {
	return f.current
}

// Is reports whether the machine is in phase p.
func (f *BattleFsm) Is(p Phase) bool {
	return f.current == p
}

// IsOver reports whether the terminal phase has been reached.
func (f *BattleFsm) IsOver() bool {
	return f.current == PhaseGameOver
}

// CanTransition reports whether to is reachable from the current phase.
func (f *BattleFsm) CanTransition(to Phase) bool {
	for _, next := range phaseEdges[f.current] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves to the given phase when the edge exists. An illegal
// transition is a no-op and returns false.
func (f *BattleFsm) Transition(to Phase) bool {
	if !f.CanTransition(to) {
		return false
	}
	from := f.current
	f.current = to
	events.Notify(f.dispatcher, func(l PhaseChangedListener) { l.OnPhaseChanged(from, to) })
	return true
}
