package watchers

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"github.com/hexcardgame/hexcard-server-go/internal/game/zones"
)

// CardsDrawnWatcher tracks cards drawn by players.
type CardsDrawnWatcher struct {
	*BaseWatcher
	cardsDrawn map[card.PlayerID]int
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{
		BaseWatcher: NewBaseWatcher("CardsDrawnWatcher"),
		cardsDrawn:  make(map[card.PlayerID]int),
	}
}

func (w *CardsDrawnWatcher) OnDrawCard(id card.PlayerID, _ *card.Instance) {
	w.cardsDrawn[id]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsDrawnWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.cardsDrawn = make(map[card.PlayerID]int)
}

// GetCount returns the number of cards drawn by a player.
func (w *CardsDrawnWatcher) GetCount(id card.PlayerID) int {
	return w.cardsDrawn[id]
}

// CardsPlayedWatcher tracks the cards one player played, both over the game
// and during the current turn.
type CardsPlayedWatcher struct {
	*BaseWatcher
	played   []*card.Instance
	thisTurn int
}

// NewCardsPlayedWatcher creates a watcher for player.
func NewCardsPlayedWatcher(player card.PlayerID) *CardsPlayedWatcher {
	return &CardsPlayedWatcher{
		BaseWatcher: NewPlayerWatcher("CardsPlayedWatcher", player),
	}
}

func (w *CardsPlayedWatcher) OnPlayCard(id card.PlayerID, c *card.Instance) {
	if !w.Tracks(id) {
		return
	}
	w.played = append(w.played, c)
	w.thisTurn++
	w.SetCondition(true)
}

// OnFinishPlayerTurn starts a new per-turn count.
func (w *CardsPlayedWatcher) OnFinishPlayerTurn(_, _ *rules.Player) {
	w.thisTurn = 0
}

// Reset clears the watcher's state.
func (w *CardsPlayedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.played = nil
	w.thisTurn = 0
}

// GetPlayed returns the cards played so far, in order.
func (w *CardsPlayedWatcher) GetPlayed() []*card.Instance {
	return append([]*card.Instance(nil), w.played...)
}

// GetCount returns the number of cards played this game.
func (w *CardsPlayedWatcher) GetCount() int { return len(w.played) }

// GetCountThisTurn returns the number of cards played since the last turn
// change.
func (w *CardsPlayedWatcher) GetCountThisTurn() int { return w.thisTurn }

// HandFullWatcher records draws refused because a hand was full.
type HandFullWatcher struct {
	*BaseWatcher
	refused map[card.PlayerID]int
}

func NewHandFullWatcher() *HandFullWatcher {
	return &HandFullWatcher{
		BaseWatcher: NewBaseWatcher("HandFullWatcher"),
		refused:     make(map[card.PlayerID]int),
	}
}

func (w *HandFullWatcher) OnHandFull(id card.PlayerID, _ *zones.Hand) {
	w.refused[id]++
	w.SetCondition(true)
}

func (w *HandFullWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.refused = make(map[card.PlayerID]int)
}

// GetCount returns the number of refused draws of a player.
func (w *HandFullWatcher) GetCount(id card.PlayerID) int { return w.refused[id] }
