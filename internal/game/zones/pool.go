package zones

import (
	"fmt"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// CreatePoolListener is notified when the pool is constructed.
type CreatePoolListener interface {
	OnCreatePool(pool *Pool)
}

// Pool is a fixed row of revealed cards addressed by position.
type Pool struct {
	slots []*card.Instance
}

// NewPool creates a pool with size empty positions.
func NewPool(size int, dispatcher *events.Dispatcher) *Pool {
	if size < 0 {
		panic(fmt.Sprintf("zones: negative pool size %d", size))
	}
	p := &Pool{slots: make([]*card.Instance, size)}
	events.Notify(dispatcher, func(l CreatePoolListener) { l.OnCreatePool(p) })
	return p
}

// Size is the number of positions, filled or not.
func (p *Pool) Size() int { return len(p.slots) }

// Positions lists every position index in order.
func (p *Pool) Positions() []int {
	out := make([]int, len(p.slots))
	for i := range out {
		out[i] = i
	}
	return out
}

// AddCardAt places c at position, replacing whatever was there.
func (p *Pool) AddCardAt(c *card.Instance, position int) {
	p.checkPosition(position)
	p.slots[position] = c
}

// Get returns the card at position, nil when empty.
func (p *Pool) Get(position int) *card.Instance {
	p.checkPosition(position)
	return p.slots[position]
}

// Filled counts occupied positions.
func (p *Pool) Filled() int {
	n := 0
	for _, c := range p.slots {
		if c != nil {
			n++
		}
	}
	return n
}

func (p *Pool) Has(c *card.Instance) bool {
	if c == nil {
		return false
	}
	for _, slot := range p.slots {
		if slot == c {
			return true
		}
	}
	return false
}

// Cards returns a snapshot of every position; empty positions are nil.
func (p *Pool) Cards() []*card.Instance {
	out := make([]*card.Instance, len(p.slots))
	copy(out, p.slots)
	return out
}

func (p *Pool) Clear() {
	for i := range p.slots {
		p.slots[i] = nil
	}
}

func (p *Pool) checkPosition(position int) {
	if position < 0 || position >= len(p.slots) {
		panic(fmt.Sprintf("zones: pool position %d out of range [0,%d)", position, len(p.slots)))
	}
}
