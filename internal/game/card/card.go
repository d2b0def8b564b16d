package card

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PlayerID identifies one of the two seats of a game.
type PlayerID int

const (
	User PlayerID = iota
	Ai
)

var playerNames = map[PlayerID]string{
	User: "USER",
	Ai:   "AI",
}

func (p PlayerID) String() string {
	if name, ok := playerNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PLAYER_%d", int(p))
}

// Valid reports whether p is one of the two seats.
func (p PlayerID) Valid() bool {
	return p == User || p == Ai
}

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID {
	if p == User {
		return Ai
	}
	return User
}

// ParsePlayerID maps "user"/"ai" (any case) to a PlayerID.
func ParsePlayerID(s string) (PlayerID, error) {
	switch {
	case strings.EqualFold(s, "user"):
		return User, nil
	case strings.EqualFold(s, "ai"):
		return Ai, nil
	}
	return 0, fmt.Errorf("unknown player id %q", s)
}

// Definition is a catalog entry. Definitions are shared and never mutated.
type Definition struct {
	ID          string
	Name        string
	Description string
	Visual      string
}

// Instance binds a definition to a place in the game. Two instances of the
// same definition are distinct cards; compare instances by pointer.
type Instance struct {
	ID   uuid.UUID
	Data *Definition
}

// NewInstance creates a fresh instance of def.
func NewInstance(def *Definition) *Instance {
	return &Instance{ID: uuid.New(), Data: def}
}

// Name returns the definition name, or "" for an unbound instance.
func (c *Instance) Name() string {
	if c == nil || c.Data == nil {
		return ""
	}
	return c.Data.Name
}

func (c *Instance) String() string {
	return fmt.Sprintf("%s(%s)", c.Name(), c.ID)
}
