// Package watchers holds observers that track conditions over a session by
// subscribing to its notifications.
package watchers

import (
	"sync"

	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/events"
)

// Scope defines what a watcher tracks.
type Scope int

const (
	// ScopeGame tracks the whole session.
	ScopeGame Scope = iota
	// ScopePlayer tracks a single seat.
	ScopePlayer
)

func (s Scope) String() string {
	switch s {
	case ScopeGame:
		return "GAME"
	case ScopePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}

// Watcher is an observer with a resettable condition. Concrete watchers also
// implement the notification capabilities they care about.
type Watcher interface {
	Key() string
	Scope() Scope
	ConditionMet() bool
	Reset()
}

// BaseWatcher carries the state every watcher shares.
type BaseWatcher struct {
	scope     Scope
	key       string
	player    card.PlayerID
	condition bool
}

// NewBaseWatcher creates a game-scoped base with the given key.
func NewBaseWatcher(key string) *BaseWatcher {
	return &BaseWatcher{scope: ScopeGame, key: key}
}

// NewPlayerWatcher creates a base that only tracks player.
func NewPlayerWatcher(key string, player card.PlayerID) *BaseWatcher {
	return &BaseWatcher{scope: ScopePlayer, key: player.String() + "_" + key, player: player}
}

func (bw *BaseWatcher) Key() string        { return bw.key }
func (bw *BaseWatcher) Scope() Scope       { return bw.scope }
func (bw *BaseWatcher) ConditionMet() bool { return bw.condition }

func (bw *BaseWatcher) SetCondition(condition bool) { bw.condition = condition }

// Reset clears the condition.
func (bw *BaseWatcher) Reset() { bw.condition = false }

// Tracks reports whether a notification about id concerns this watcher.
func (bw *BaseWatcher) Tracks(id card.PlayerID) bool {
	return bw.scope == ScopeGame || bw.player == id
}

// Registry subscribes watchers to a dispatcher and resets them together.
// A registry outlives sessions: on restart every watcher is reset.
type Registry struct {
	mu         sync.RWMutex
	dispatcher *events.Dispatcher
	watchers   map[string]registered
	self       events.Handle
}

type registered struct {
	watcher Watcher
	handle  events.Handle
}

// NewRegistry creates a registry bound to dispatcher.
func NewRegistry(dispatcher *events.Dispatcher) *Registry {
	r := &Registry{
		dispatcher: dispatcher,
		watchers:   make(map[string]registered),
	}
	r.self = dispatcher.Subscribe(r)
	return r
}

// Add subscribes watcher. A watcher with the same key replaces the old one.
func (r *Registry) Add(watcher Watcher) {
	if watcher == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.watchers[watcher.Key()]; ok {
		r.dispatcher.Unsubscribe(old.handle)
	}
	r.watchers[watcher.Key()] = registered{
		watcher: watcher,
		handle:  r.dispatcher.Subscribe(watcher),
	}
}

// Remove unsubscribes the watcher with key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg, ok := r.watchers[key]; ok {
		r.dispatcher.Unsubscribe(reg.handle)
		delete(r.watchers, key)
	}
}

// Get returns the watcher registered under key, nil if there is none.
func (r *Registry) Get(key string) Watcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watchers[key].watcher
}

// ByScope returns the watchers with the given scope.
func (r *Registry) ByScope(scope Scope) []Watcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Watcher
	for _, reg := range r.watchers {
		if reg.watcher.Scope() == scope {
			out = append(out, reg.watcher)
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

// ResetAll resets every watcher.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, reg := range r.watchers {
		reg.watcher.Reset()
	}
}

// OnRestartGame resets every watcher for the new session.
func (r *Registry) OnRestartGame(*game.Game, string) { r.ResetAll() }

// Close unsubscribes the registry and all its watchers.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, reg := range r.watchers {
		r.dispatcher.Unsubscribe(reg.handle)
		delete(r.watchers, key)
	}
	r.dispatcher.Unsubscribe(r.self)
}
