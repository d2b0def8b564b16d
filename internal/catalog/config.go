package catalog

import (
	"fmt"
	"math/rand/v2"

	"github.com/hexcardgame/hexcard-server-go/internal/config"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
)

// builtinCopies is how many copies of each builtin card a deck holds.
const builtinCopies = 4

var builtinCards = []card.Definition{
	{ID: "spark", Name: "Spark", Description: "Deal 1 damage.", Visual: "spark.png"},
	{ID: "bolt", Name: "Bolt", Description: "Deal 3 damage.", Visual: "bolt.png"},
	{ID: "ward", Name: "Ward", Description: "Prevent the next 2 damage.", Visual: "ward.png"},
	{ID: "mend", Name: "Mend", Description: "Gain 2 life.", Visual: "mend.png"},
	{ID: "forage", Name: "Forage", Description: "Gain 1 resource.", Visual: "forage.png"},
	{ID: "insight", Name: "Insight", Description: "Look at the top card of your library.", Visual: "insight.png"},
}

// Builtin is the catalog used when the configuration names no cards. Each
// player gets builtinCopies of every card.
func Builtin(rng *rand.Rand) *Static {
	deck := make([]DeckEntry, len(builtinCards))
	for i, def := range builtinCards {
		deck[i] = DeckEntry{CardID: def.ID, Copies: builtinCopies}
	}
	c, err := NewStatic(builtinCards, map[card.PlayerID][]DeckEntry{card.User: deck, card.Ai: deck}, rng)
	if err != nil {
		panic(err)
	}
	return c
}

// FromConfig builds a static catalog from the cards and per-player decks
// inlined in the configuration. Deck keys are player ids ("user", "ai").
func FromConfig(cfg config.CatalogConfig, rng *rand.Rand) (*Static, error) {
	if len(cfg.Cards) == 0 {
		return Builtin(rng), nil
	}

	defs := make([]card.Definition, len(cfg.Cards))
	for i, c := range cfg.Cards {
		defs[i] = card.Definition{ID: c.ID, Name: c.Name, Description: c.Description, Visual: c.Visual}
	}

	decks := make(map[card.PlayerID][]DeckEntry, len(cfg.Decks))
	for key, copies := range cfg.Decks {
		id, err := card.ParsePlayerID(key)
		if err != nil {
			return nil, fmt.Errorf("catalog.decks: %w", err)
		}
		entries := make([]DeckEntry, len(copies))
		for i, c := range copies {
			entries[i] = DeckEntry{CardID: c.CardID, Copies: c.Copies}
		}
		decks[id] = entries
	}
	return NewStatic(defs, decks, rng)
}
