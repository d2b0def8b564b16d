package events

import (
	"sync"
)

// Handle identifies a subscription so it can be removed later.
type Handle int

// InvalidHandle is returned when subscribing a nil listener.
const InvalidHandle Handle = -1

type subscription struct {
	handle   Handle
	listener any
}

// Dispatcher is a synchronous publish/subscribe bus scoped to one game
// session. Listeners register once and receive every notification whose
// capability interface they implement.
//
// Delivery happens inline on the publishing call, in registration order.
// A listener may publish from inside a notification; the nested delivery
// completes before the outer one resumes.
type Dispatcher struct {
	mu         sync.RWMutex
	subs       []subscription
	nextHandle Handle
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a listener and returns its handle. The listener is
// matched against capabilities at notify time.
func (d *Dispatcher) Subscribe(listener any) Handle {
	if listener == nil {
		return InvalidHandle
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	handle := d.nextHandle
	d.nextHandle++
	d.subs = append(d.subs, subscription{handle: handle, listener: listener})
	return handle
}

// Unsubscribe removes the listener identified by handle.
func (d *Dispatcher) Unsubscribe(handle Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, sub := range d.subs {
		if sub.handle == handle {
			subs := make([]subscription, 0, len(d.subs)-1)
			subs = append(subs, d.subs[:i]...)
			d.subs = append(subs, d.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}

// snapshot copies the subscriber set so delivery runs without the lock held.
func (d *Dispatcher) snapshot() []subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]subscription, len(d.subs))
	copy(out, d.subs)
	return out
}

// Notify invokes fn on every listener implementing capability T. It returns
// the number of listeners reached.
func Notify[T any](d *Dispatcher, fn func(T)) int {
	if d == nil || fn == nil {
		return 0
	}
	reached := 0
	for _, sub := range d.snapshot() {
		if listener, ok := sub.listener.(T); ok {
			fn(listener)
			reached++
		}
	}
	return reached
}
