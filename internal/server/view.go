package server

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/watchers"
)

// WSMessage is the frame exchanged with websocket clients in both
// directions.
type WSMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	PlayerID  string `json:"player_id,omitempty"`
	CardID    string `json:"card_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Outgoing frame types.
const (
	MessageEvent   = "event"
	MessageState   = "state"
	MessageHistory = "history"
	MessageResult  = "result"
	MessageError   = "error"
)

// CommandResult reports whether a command changed the game.
type CommandResult struct {
	Command string `json:"command"`
	Applied bool   `json:"applied"`
}

// PlayerView is the observer-facing shape of a player.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Life      int    `json:"life"`
	Resources int    `json:"resources"`
	HandSize  int    `json:"hand_size"`
	Library   int    `json:"library"`
}

// StateView is a full snapshot of a session.
type StateView struct {
	SessionID  string                          `json:"session_id"`
	Phase      string                          `json:"phase"`
	Started    bool                            `json:"started"`
	Finished   bool                            `json:"finished"`
	TurnNumber int                             `json:"turn_number"`
	Starter    string                          `json:"starter,omitempty"`
	Active     string                          `json:"active,omitempty"`
	Winner     string                          `json:"winner,omitempty"`
	Players    []PlayerView                    `json:"players"`
	Hands      map[string][]*watchers.CardView `json:"hands"`
	Graveyard  []*watchers.CardView            `json:"graveyard"`
	Pool       []*watchers.CardView            `json:"pool"`
}

func cardViews(cards []*card.Instance) []*watchers.CardView {
	views := make([]*watchers.CardView, len(cards))
	for i, c := range cards {
		views[i] = watchers.NewCardView(c)
	}
	return views
}

// NewStateView snapshots g. The caller must hold the manager lock.
func NewStateView(g *game.Game) StateView {
	v := StateView{
		SessionID:  g.ID(),
		Phase:      g.Phase().String(),
		Started:    g.IsStarted(),
		Finished:   g.IsFinished(),
		TurnNumber: g.TurnNumber(),
		Hands:      make(map[string][]*watchers.CardView, 2),
		Graveyard:  cardViews(g.Graveyard().Cards()),
		Pool:       cardViews(g.Pool().Cards()),
	}
	if p := g.Starter(); p != nil {
		v.Starter = p.ID.String()
	}
	if p := g.Active(); p != nil {
		v.Active = p.ID.String()
	}
	if p := g.Winner(); p != nil {
		v.Winner = p.ID.String()
	}
	for _, p := range g.Players() {
		hand := g.Hand(p.ID)
		v.Players = append(v.Players, PlayerView{
			ID:        p.ID.String(),
			Name:      p.Name,
			Life:      p.Life,
			Resources: p.Resources,
			HandSize:  hand.Len(),
			Library:   g.Library().Size(p.ID),
		})
		v.Hands[p.ID.String()] = cardViews(hand.Cards())
	}
	return v
}
