package game

import "github.com/hexcardgame/hexcard-server-go/internal/game/card"

// Commands is the capability an AiPolicy acts through. Every command is
// guarded exactly as it is for a human caller.
type Commands interface {
	StartPlayerTurn() bool
	FinishPlayerTurn() bool
	DrawCard(id card.PlayerID) bool
	PlayCard(id card.PlayerID, c *card.Instance) bool
	IsMyTurn(id card.PlayerID) bool
	// HandCards returns a snapshot of id's hand.
	HandCards(id card.PlayerID) []*card.Instance
}

// AiPolicy decides what the computer player does with its turn.
type AiPolicy interface {
	PlayTurn(id card.PlayerID, cmd Commands)
}

// AiPolicyFunc adapts a function to AiPolicy.
type AiPolicyFunc func(id card.PlayerID, cmd Commands)

func (f AiPolicyFunc) PlayTurn(id card.PlayerID, cmd Commands) { f(id, cmd) }

// IdleAiPolicy takes no action.
type IdleAiPolicy struct{}

func (IdleAiPolicy) PlayTurn(card.PlayerID, Commands) {}

// commands narrows a Game to Commands so a policy cannot reach the
// administrative surface through a type assertion.
type commands struct{ g *Game }

func (c commands) StartPlayerTurn() bool          { return c.g.StartPlayerTurn() }
func (c commands) FinishPlayerTurn() bool         { return c.g.FinishPlayerTurn() }
func (c commands) DrawCard(id card.PlayerID) bool { return c.g.DrawCard(id) }
func (c commands) IsMyTurn(id card.PlayerID) bool { return c.g.IsMyTurn(id) }

func (c commands) PlayCard(id card.PlayerID, ci *card.Instance) bool {
	return c.g.PlayCard(id, ci)
}

func (c commands) HandCards(id card.PlayerID) []*card.Instance {
	return c.g.Hand(id).Cards()
}
