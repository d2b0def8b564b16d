// Package game aggregates the rules engine into one addressable session.
//
// A Game is owned by a single caller and is not safe for concurrent use;
// the Manager serializes access for callers that run on several goroutines.
package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/hexcardgame/hexcard-server-go/internal/catalog"
	"github.com/hexcardgame/hexcard-server-go/internal/config"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
	"github.com/hexcardgame/hexcard-server-go/internal/game/mechanics"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"github.com/hexcardgame/hexcard-server-go/internal/game/zones"
	"go.uber.org/zap"
)

// Parameters are the rules settings a session is built with.
type Parameters struct {
	StartingHandCount int
	MaxHandSize       int
	PoolSize          int
	// Players is indexed by card.PlayerID.
	Players [2]rules.PlayerParameters
}

// DefaultParameters matches the configuration defaults.
func DefaultParameters() Parameters {
	return ParametersFromConfig(config.Default().Game)
}

// ParametersFromConfig maps the game section of the configuration.
func ParametersFromConfig(cfg config.GameConfig) Parameters {
	player := func(name string) rules.PlayerParameters {
		return rules.PlayerParameters{
			Name:      name,
			Life:      cfg.StartingLife,
			Resources: cfg.StartingResources,
		}
	}
	return Parameters{
		StartingHandCount: cfg.StartingHandCount,
		MaxHandSize:       cfg.MaxHandSize,
		PoolSize:          cfg.PoolSize,
		Players: [2]rules.PlayerParameters{
			card.User: player(cfg.Profiles.UserName),
			card.Ai:   player(cfg.Profiles.AiName),
		},
	}
}

// Option customizes a Game at construction.
type Option func(*options)

type options struct {
	rng       *rand.Rand
	starter   rules.StarterPolicy
	ai        AiPolicy
	sessionID string
}

// WithRand fixes the random source used for shuffles, reveals and the
// default starter policy.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithStarter replaces the random starter policy.
func WithStarter(policy rules.StarterPolicy) Option {
	return func(o *options) { o.starter = policy }
}

// WithAiPolicy plugs the policy run by ExecuteAiTurn.
func WithAiPolicy(policy AiPolicy) Option {
	return func(o *options) { o.ai = policy }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(o *options) { o.sessionID = id }
}

// Game is the root aggregate of one match.
type Game struct {
	session *mechanics.Session
	steps   *mechanics.Mechanics
	players [2]*rules.Player
	ai      AiPolicy
	logger  *zap.Logger
}

// New builds a session in PhasePreGame. Every entity announces its creation
// on dispatcher as it is built: players, hands, library, graveyard, pool.
func New(params Parameters, cat catalog.Catalog, dispatcher *events.Dispatcher, logger *zap.Logger, opts ...Option) *Game {
	if cat == nil {
		panic("game: nil catalog")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{ai: IdleAiPolicy{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.starter == nil {
		o.starter = rules.RandomStarter(o.rng)
	}
	if o.sessionID == "" {
		o.sessionID = uuid.NewString()
	}

	g := &Game{ai: o.ai, logger: logger.With(zap.String("session_id", o.sessionID))}
	for _, id := range []card.PlayerID{card.User, card.Ai} {
		g.players[id] = rules.NewPlayer(id, params.Players[id], dispatcher)
	}

	var hands [2]*zones.Hand
	decks := make(map[card.PlayerID][]*card.Definition, 2)
	for _, id := range []card.PlayerID{card.User, card.Ai} {
		hands[id] = zones.NewHand(id, params.MaxHandSize, o.rng, dispatcher)
		decks[id] = cat.Library(id)
	}

	g.session = &mechanics.Session{
		ID:                o.sessionID,
		Dispatcher:        dispatcher,
		Logger:            g.logger,
		StartingHandCount: params.StartingHandCount,
		Turn:              rules.NewTurnLogic(g.players, o.starter),
		Fsm:               rules.NewBattleFsm(dispatcher),
		Hands:             hands,
		Library:           zones.NewLibrary(decks, cat, o.rng, dispatcher),
		Graveyard:         zones.NewGraveyard(o.rng, dispatcher),
		Pool:              zones.NewPool(params.PoolSize, dispatcher),
	}
	g.steps = mechanics.New(g.session)

	g.logger.Debug("game created",
		zap.Int("user_library", g.session.Library.Size(card.User)),
		zap.Int("ai_library", g.session.Library.Size(card.Ai)),
		zap.Int("pool_size", params.PoolSize),
	)
	return g
}

// ID returns the session id.
func (g *Game) ID() string { return g.session.ID }

// Dispatcher returns the bus the session publishes on.
func (g *Game) Dispatcher() *events.Dispatcher { return g.session.Dispatcher }

// PreStart shuffles the libraries. It is only legal before Start.
func (g *Game) PreStart() bool { return g.steps.PreStartGame.Execute() }

// Start decides the starter, deals the starting hands and reveals the pool.
func (g *Game) Start() bool { return g.steps.StartGame.Execute() }

func (g *Game) StartPlayerTurn() bool { return g.steps.StartPlayerTurn.Execute() }

func (g *Game) FinishPlayerTurn() bool { return g.steps.FinishPlayerTurn.Execute() }

// DrawCard moves the top card of id's library into id's hand.
func (g *Game) DrawCard(id card.PlayerID) bool { return g.steps.HandLibrary.DrawCard(id) }

// PlayCard moves c from id's hand to the graveyard.
func (g *Game) PlayCard(id card.PlayerID, c *card.Instance) bool {
	return g.steps.HandGraveyard.PlayCard(id, c)
}

// ForceWin ends the game in favor of id regardless of its state. It is the
// administrative override and does not evaluate any win condition.
func (g *Game) ForceWin(id card.PlayerID) bool {
	winner := g.session.Turn.MustPlayer(id)
	g.logger.Warn("forcing win", zap.Stringer("player", id))
	return g.steps.FinishGame.Execute(winner)
}

// ExecuteAiTurn hands the turn of id to the configured AiPolicy. The policy
// only reaches the game through Commands, so it is bound by the same guards
// as any other caller.
func (g *Game) ExecuteAiTurn(id card.PlayerID) bool {
	g.session.Turn.MustPlayer(id)
	s := g.session
	if !s.Started || s.Finished {
		g.logger.Debug("ai turn skipped", zap.Stringer("player", id), zap.Bool("started", s.Started), zap.Bool("finished", s.Finished))
		return false
	}
	if !s.Turn.IsMyTurn(id) {
		g.logger.Debug("ai turn skipped", zap.Stringer("player", id), zap.String("reason", "not player's turn"))
		return false
	}
	g.ai.PlayTurn(id, commands{g})
	return true
}

func (g *Game) IsStarted() bool { return g.session.Started }

func (g *Game) IsFinished() bool { return g.session.Finished }

// IsTurnInProgress reports whether StartPlayerTurn opened the current turn.
func (g *Game) IsTurnInProgress() bool { return g.session.TurnInProgress }

func (g *Game) IsMyTurn(id card.PlayerID) bool { return g.session.Turn.IsMyTurn(id) }

// Winner returns the latched winner, nil while the game runs.
func (g *Game) Winner() *rules.Player { return g.session.Winner }

func (g *Game) Phase() rules.Phase { return g.session.Fsm.Current() }

func (g *Game) TurnNumber() int { return g.session.Turn.TurnNumber() }

// Players returns both players in seat order.
func (g *Game) Players() []*rules.Player { return g.session.Turn.Players() }

func (g *Game) Player(id card.PlayerID) (*rules.Player, error) {
	return g.session.Turn.GetPlayer(id)
}

func (g *Game) Starter() *rules.Player { return g.session.Turn.Starter() }

func (g *Game) Active() *rules.Player { return g.session.Turn.Active() }

// Hand returns the hand of id. It panics for an unknown id.
func (g *Game) Hand(id card.PlayerID) *zones.Hand { return g.session.Hand(id) }

func (g *Game) Library() *zones.Library { return g.session.Library }

func (g *Game) Graveyard() *zones.Graveyard { return g.session.Graveyard }

func (g *Game) Pool() *zones.Pool { return g.session.Pool }
