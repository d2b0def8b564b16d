package watchers

import (
	"sync"
	"time"

	"github.com/hexcardgame/hexcard-server-go/internal/game"
	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
	"github.com/hexcardgame/hexcard-server-go/internal/game/rules"
	"github.com/hexcardgame/hexcard-server-go/internal/game/zones"
)

// Entry types recorded by the Journal.
const (
	EntryCreatePlayer    = "create_player"
	EntryCreateHand      = "create_hand"
	EntryCreateLibrary   = "create_library"
	EntryCreateGraveyard = "create_graveyard"
	EntryCreatePool      = "create_pool"
	EntryPreStart        = "pre_start"
	EntryStart           = "start"
	EntryRevealPool      = "reveal_pool"
	EntryDraw            = "draw"
	EntryHandFull        = "hand_full"
	EntryPlay            = "play"
	EntryDiscard         = "discard"
	EntryStartTurn       = "start_turn"
	EntryFinishTurn      = "finish_turn"
	EntryPhase           = "phase"
	EntryFinish          = "finish"
	EntryRestart         = "restart"
)

// CardView is the observer-facing shape of a card instance.
type CardView struct {
	ID          string `json:"id"`
	Definition  string `json:"definition"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Visual      string `json:"visual,omitempty"`
}

// NewCardView flattens c; nil yields nil.
func NewCardView(c *card.Instance) *CardView {
	if c == nil {
		return nil
	}
	v := &CardView{ID: c.ID.String()}
	if c.Data != nil {
		v.Definition = c.Data.ID
		v.Name = c.Data.Name
		v.Description = c.Data.Description
		v.Visual = c.Data.Visual
	}
	return v
}

// Entry is one recorded notification. Session is the id of the session the
// notification belongs to; for a restart it is the incoming session and
// Previous the one being replaced.
type Entry struct {
	Seq      uint64      `json:"seq"`
	Type     string      `json:"type"`
	Time     time.Time   `json:"time"`
	Session  string      `json:"session,omitempty"`
	Previous string      `json:"previous,omitempty"`
	Player   string      `json:"player,omitempty"`
	Next     string      `json:"next,omitempty"`
	From     string      `json:"from,omitempty"`
	To       string      `json:"to,omitempty"`
	Size     int         `json:"size,omitempty"`
	Card     *CardView   `json:"card,omitempty"`
	Cards    []*CardView `json:"cards,omitempty"`
}

// Journal keeps the most recent notifications of a session in order and
// forwards each one to its followers as it is recorded.
type Journal struct {
	*BaseWatcher

	mu        sync.Mutex
	size      int
	session   string
	entries   []Entry
	seq       uint64
	followers map[int]func(Entry)
	nextID    int
	now       func() time.Time
}

// NewJournal keeps up to size entries. A size of zero keeps no history but
// still forwards to followers.
func NewJournal(size int) *Journal {
	return &Journal{
		BaseWatcher: NewBaseWatcher("Journal"),
		size:        size,
		followers:   make(map[int]func(Entry)),
		now:         time.Now,
	}
}

// Follow registers fn for every future entry and returns a function that
// removes it. fn runs on the notifying goroutine and must not block.
func (j *Journal) Follow(fn func(Entry)) (cancel func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	id := j.nextID
	j.nextID++
	j.followers[id] = fn
	return func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.followers, id)
	}
}

// Entries returns the retained history, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Session returns the id stamped on new entries.
func (j *Journal) Session() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.session
}

// Reset drops the history. Sequence numbers and the session id are kept.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.BaseWatcher.Reset()
	j.entries = nil
}

func (j *Journal) record(e Entry) {
	j.mu.Lock()
	j.seq++
	e.Seq = j.seq
	e.Time = j.now()
	if e.Session == "" {
		e.Session = j.session
	}
	if j.size > 0 {
		if len(j.entries) == j.size {
			copy(j.entries, j.entries[1:])
			j.entries = j.entries[:len(j.entries)-1]
		}
		j.entries = append(j.entries, e)
	}
	j.SetCondition(true)
	followers := make([]func(Entry), 0, len(j.followers))
	for _, fn := range j.followers {
		followers = append(followers, fn)
	}
	j.mu.Unlock()

	for _, fn := range followers {
		fn(e)
	}
}

func (j *Journal) OnCreatePlayer(p *rules.Player) {
	j.record(Entry{Type: EntryCreatePlayer, Player: p.ID.String()})
}

func (j *Journal) OnCreateHand(hand *zones.Hand, id card.PlayerID) {
	j.record(Entry{Type: EntryCreateHand, Player: id.String(), Size: hand.MaxHandSize()})
}

func (j *Journal) OnCreateLibrary(*zones.Library) { j.record(Entry{Type: EntryCreateLibrary}) }

func (j *Journal) OnCreateGraveyard(*zones.Graveyard) { j.record(Entry{Type: EntryCreateGraveyard}) }

func (j *Journal) OnCreatePool(pool *zones.Pool) {
	j.record(Entry{Type: EntryCreatePool, Size: pool.Size()})
}

func (j *Journal) OnPreStartGame() { j.record(Entry{Type: EntryPreStart}) }

func (j *Journal) OnStartGame(starter *rules.Player) {
	j.record(Entry{Type: EntryStart, Player: starter.ID.String()})
}

func (j *Journal) OnRevealPool(pool []*card.Instance) {
	views := make([]*CardView, len(pool))
	for i, c := range pool {
		views[i] = NewCardView(c)
	}
	j.record(Entry{Type: EntryRevealPool, Cards: views})
}

func (j *Journal) OnDrawCard(id card.PlayerID, c *card.Instance) {
	j.record(Entry{Type: EntryDraw, Player: id.String(), Card: NewCardView(c)})
}

func (j *Journal) OnHandFull(id card.PlayerID, _ *zones.Hand) {
	j.record(Entry{Type: EntryHandFull, Player: id.String()})
}

func (j *Journal) OnPlayCard(id card.PlayerID, c *card.Instance) {
	j.record(Entry{Type: EntryPlay, Player: id.String(), Card: NewCardView(c)})
}

func (j *Journal) OnDiscardCard(c *card.Instance) {
	j.record(Entry{Type: EntryDiscard, Card: NewCardView(c)})
}

func (j *Journal) OnStartPlayerTurn(p *rules.Player) {
	j.record(Entry{Type: EntryStartTurn, Player: p.ID.String()})
}

func (j *Journal) OnFinishPlayerTurn(previous, next *rules.Player) {
	j.record(Entry{Type: EntryFinishTurn, Player: previous.ID.String(), Next: next.ID.String()})
}

func (j *Journal) OnPhaseChanged(from, to rules.Phase) {
	j.record(Entry{Type: EntryPhase, From: from.String(), To: to.String()})
}

func (j *Journal) OnFinishGame(winner *rules.Player) {
	j.record(Entry{Type: EntryFinish, Player: winner.ID.String()})
}

// OnBeginSession switches the id stamped on later entries.
func (j *Journal) OnBeginSession(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.session = id
}

// OnRestartGame records the restart under the incoming session, ahead of
// its creation entries.
func (j *Journal) OnRestartGame(previous *game.Game, next string) {
	j.record(Entry{Type: EntryRestart, Session: next, Previous: previous.ID()})
}
