package rules

import (
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// CreatePlayerListener is notified when a player is constructed.
type CreatePlayerListener interface {
	OnCreatePlayer(player *Player)
}

// PlayerParameters are the per-player counters a game starts with.
type PlayerParameters struct {
	Name      string
	Life      int
	Resources int
}

// Player is one seat of the game with its mutable counters.
type Player struct {
	ID        card.PlayerID
	Name      string
	Life      int
	Resources int
}

// NewPlayer creates a player and announces it on dispatcher.
func NewPlayer(id card.PlayerID, params PlayerParameters, dispatcher *events.Dispatcher) *Player {
	name := params.Name
	if name == "" {
		name = id.String()
	}
	p := &Player{
		ID:        id,
		Name:      name,
		Life:      params.Life,
		Resources: params.Resources,
	}
	events.Notify(dispatcher, func(l CreatePlayerListener) { l.OnCreatePlayer(p) })
	return p
}
