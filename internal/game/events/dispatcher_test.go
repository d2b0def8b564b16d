package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger interface{ OnPing(n int) }
type ponger interface{ OnPong() }

type recorder struct {
	name string
	log  *[]string
}

func (r *recorder) OnPing(n int) { *r.log = append(*r.log, r.name+":ping") }

type both struct{ recorder }

func (b *both) OnPong() { *b.log = append(*b.log, b.name+":pong") }

func TestDispatcherDeliversByCapability(t *testing.T) {
	d := NewDispatcher()
	var log []string

	d.Subscribe(&recorder{name: "a", log: &log})
	d.Subscribe(&both{recorder{name: "b", log: &log}})

	assert.Equal(t, 2, Notify(d, func(p pinger) { p.OnPing(1) }))
	assert.Equal(t, 1, Notify(d, func(p ponger) { p.OnPong() }))
	assert.Equal(t, []string{"a:ping", "b:ping", "b:pong"}, log)
}

func TestDispatcherRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	var log []string
	for _, name := range []string{"first", "second", "third"} {
		d.Subscribe(&recorder{name: name, log: &log})
	}

	Notify(d, func(p pinger) { p.OnPing(0) })
	assert.Equal(t, []string{"first:ping", "second:ping", "third:ping"}, log)
}

func TestDispatcherUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var log []string
	h := d.Subscribe(&recorder{name: "a", log: &log})
	d.Subscribe(&recorder{name: "b", log: &log})
	require.Equal(t, 2, d.Len())

	d.Unsubscribe(h)
	assert.Equal(t, 1, d.Len())

	Notify(d, func(p pinger) { p.OnPing(0) })
	assert.Equal(t, []string{"b:ping"}, log)

	// unknown handles are ignored
	d.Unsubscribe(Handle(99))
	assert.Equal(t, 1, d.Len())
}

func TestDispatcherNilListener(t *testing.T) {
	d := NewDispatcher()
	assert.Equal(t, InvalidHandle, d.Subscribe(nil))
	assert.Equal(t, 0, d.Len())
}

type reentrant struct {
	d   *Dispatcher
	log *[]string
}

func (r *reentrant) OnPing(n int) {
	*r.log = append(*r.log, "outer-start")
	Notify(r.d, func(p ponger) { p.OnPong() })
	*r.log = append(*r.log, "outer-end")
}

type pongOnly struct{ log *[]string }

func (p *pongOnly) OnPong() { *p.log = append(*p.log, "nested") }

func TestDispatcherReentrantNotifyIsDepthFirst(t *testing.T) {
	d := NewDispatcher()
	var log []string
	d.Subscribe(&reentrant{d: d, log: &log})
	d.Subscribe(&pongOnly{log: &log})

	Notify(d, func(p pinger) { p.OnPing(0) })
	assert.Equal(t, []string{"outer-start", "nested", "outer-end"}, log)
}

type subscribingListener struct {
	d     *Dispatcher
	added bool
	log   *[]string
}

func (s *subscribingListener) OnPing(n int) {
	if !s.added {
		s.added = true
		s.d.Subscribe(&recorder{name: "late", log: s.log})
	}
}

func TestDispatcherSubscribeDuringDelivery(t *testing.T) {
	d := NewDispatcher()
	var log []string
	d.Subscribe(&subscribingListener{d: d, log: &log})

	Notify(d, func(p pinger) { p.OnPing(0) })
	assert.Empty(t, log, "listener added mid-delivery waits for the next notification")

	Notify(d, func(p pinger) { p.OnPing(0) })
	assert.Equal(t, []string{"late:ping"}, log)
}

func TestNotifyNilDispatcher(t *testing.T) {
	assert.Equal(t, 0, Notify[pinger](nil, func(pinger) {}))
}
