package rules

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
)

// ErrPlayerNotFound is returned when a lookup names a seat that is not part
// of the session.
var ErrPlayerNotFound = errors.New("player not found")

// StarterPolicy picks which of the two players acts first.
type StarterPolicy func(players [2]*Player) *Player

// RandomStarter picks either player with equal chance.
func RandomStarter(rng *rand.Rand) StarterPolicy {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return func(players [2]*Player) *Player {
		return players[rng.IntN(len(players))]
	}
}

// FixedStarter always picks id.
func FixedStarter(id card.PlayerID) StarterPolicy {
	return func(players [2]*Player) *Player {
		for _, p := range players {
			if p.ID == id {
				return p
			}
		}
		return players[0]
	}
}

// TurnLogic owns the player order, the starter decision and whose turn it is.
// Legality of ending a turn is decided by the mechanics, not here.
type TurnLogic struct {
	players    [2]*Player
	starter    *Player
	active     *Player
	turnNumber int
	policy     StarterPolicy
}

// NewTurnLogic creates turn logic for exactly two players. A nil policy
// falls back to RandomStarter.
func NewTurnLogic(players [2]*Player, policy StarterPolicy) *TurnLogic {
	if players[0] == nil || players[1] == nil {
		panic("rules: turn logic needs two players")
	}
	if players[0].ID == players[1].ID {
		panic(fmt.Sprintf("rules: duplicate player id %s", players[0].ID))
	}
	if policy == nil {
		policy = RandomStarter(nil)
	}
	return &TurnLogic{
		players: players,
		policy:  policy,
	}
}

// Players returns both players in seat order.
func (tl *TurnLogic) Players() []*Player {
	return []*Player{tl.players[0], tl.players[1]}
}

// DecideStarter runs the starter policy once and hands the turn to the
// chosen player. Later calls are no-ops and return false.
func (tl *TurnLogic) DecideStarter() bool {
	if tl.starter != nil {
		return false
	}
	chosen := tl.policy(tl.players)
	if chosen == nil || (chosen != tl.players[0] && chosen != tl.players[1]) {
		chosen = tl.players[0]
	}
	tl.starter = chosen
	tl.active = chosen
	tl.turnNumber = 1
	return true
}

// Starter returns the player who acts first, nil until decided.
func (tl *TurnLogic) Starter() *Player {
	return tl.starter
}

// Active returns the player whose turn it is, nil until the starter is
// decided.
func (tl *TurnLogic) Active() *Player {
	return tl.active
}

// TurnNumber returns the 1-based turn count, 0 before the starter is decided.
func (tl *TurnLogic) TurnNumber() int {
	return tl.turnNumber
}

// IsMyTurn reports whether id owns the current turn.
func (tl *TurnLogic) IsMyTurn(id card.PlayerID) bool {
	return tl.active != nil && tl.active.ID == id
}

// GetPlayer looks a player up by id.
func (tl *TurnLogic) GetPlayer(id card.PlayerID) (*Player, error) {
	for _, p := range tl.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
}

// MustPlayer is GetPlayer for callers that treat an unknown id as a bug.
func (tl *TurnLogic) MustPlayer(id card.PlayerID) *Player {
	p, err := tl.GetPlayer(id)
	if err != nil {
		panic(fmt.Sprintf("rules: %v", err))
	}
	return p
}

// Opponent returns the player that is not p.
func (tl *TurnLogic) Opponent(p *Player) *Player {
	if p == tl.players[0] {
		return tl.players[1]
	}
	return tl.players[0]
}

// AdvanceTurn passes the turn to the other player. It returns false before
// a starter has been decided.
func (tl *TurnLogic) AdvanceTurn() bool {
	if tl.active == nil {
		return false
	}
	tl.active = tl.Opponent(tl.active)
	tl.turnNumber++
	return true
}
