package collection

import (
	"fmt"
	"math/rand/v2"
)

// DefaultCapacity is the backing capacity of a list created with New.
const DefaultCapacity = 16

// List is a growable ordered container of references with stable indexing.
// Items are compared by identity, so T is expected to be a pointer type.
//
// Removal comes in two flavours. The unordered variants swap the last item
// into the freed slot, which is O(1) but lets two remaining items change
// relative position. The ordered variants shift every later item down by one.
// Hand, Graveyard and Library all use the unordered variants.
type List[T comparable] struct {
	items  []T
	length int
	rng    *rand.Rand
}

// New creates an empty list with DefaultCapacity. A nil rng falls back to a
// randomly seeded source.
func New[T comparable](rng *rand.Rand) *List[T] {
	return WithCapacity[T](DefaultCapacity, rng)
}

// WithCapacity creates an empty list with the given backing capacity.
func WithCapacity[T comparable](capacity int, rng *rand.Rand) *List[T] {
	if capacity < 0 {
		capacity = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &List[T]{
		items: make([]T, capacity),
		rng:   rng,
	}
}

// From wraps items without copying them.
func From[T comparable](items []T, rng *rand.Rand) *List[T] {
	l := WithCapacity[T](0, rng)
	l.items = items
	l.length = len(items)
	return l
}

// Len returns the number of items held.
func (l *List[T]) Len() int {
	return l.length
}

// Cap returns the size of the backing store.
func (l *List[T]) Cap() int {
	return len(l.items)
}

// Get returns the item at index. Reading past Len is a contract violation.
func (l *List[T]) Get(index int) T {
	l.checkIndex(index)
	return l.items[index]
}

// Set replaces the item at index.
func (l *List[T]) Set(index int, item T) {
	l.checkIndex(index)
	l.items[index] = item
}

// Add appends item, growing the backing store when full.
func (l *List[T]) Add(item T) {
	if l.length == len(l.items) {
		l.grow()
	}
	l.items[l.length] = item
	l.length++
}

// Has reports whether item is held.
func (l *List[T]) Has(item T) bool {
	return l.IndexOf(item) >= 0
}

// IndexOf returns the index of the first match, or -1.
func (l *List[T]) IndexOf(item T) int {
	for i := 0; i < l.length; i++ {
		if l.items[i] == item {
			return i
		}
	}
	return -1
}

// RemoveUnordered removes the first match by swapping the last item into its
// slot. Returns false when item is absent.
func (l *List[T]) RemoveUnordered(item T) bool {
	index := l.IndexOf(item)
	if index < 0 {
		return false
	}
	l.RemoveAtUnordered(index)
	return true
}

// RemoveOrdered removes the first match, keeping the order of the rest.
// Returns false when item is absent.
func (l *List[T]) RemoveOrdered(item T) bool {
	index := l.IndexOf(item)
	if index < 0 {
		return false
	}
	l.RemoveAtOrdered(index)
	return true
}

// RemoveAtUnordered removes and returns the item at index via swap-with-last.
func (l *List[T]) RemoveAtUnordered(index int) T {
	l.checkIndex(index)
	out := l.items[index]
	last := l.length - 1
	l.items[index] = l.items[last]
	var zero T
	l.items[last] = zero
	l.length--
	return out
}

// RemoveAtOrdered removes and returns the item at index, shifting later items.
func (l *List[T]) RemoveAtOrdered(index int) T {
	l.checkIndex(index)
	out := l.items[index]
	copy(l.items[index:l.length], l.items[index+1:l.length])
	var zero T
	l.items[l.length-1] = zero
	l.length--
	return out
}

// RandomItem returns a random held item. The list must not be empty.
func (l *List[T]) RandomItem() T {
	l.checkNotEmpty("RandomItem")
	return l.items[l.rng.IntN(l.length)]
}

// RemoveRandom removes and returns a random item using unordered removal.
// The list must not be empty.
func (l *List[T]) RemoveRandom() T {
	l.checkNotEmpty("RemoveRandom")
	return l.RemoveAtUnordered(l.rng.IntN(l.length))
}

// Shuffle reorders the held items with a Fisher-Yates pass.
func (l *List[T]) Shuffle() {
	for i := l.length - 1; i > 0; i-- {
		j := l.rng.IntN(i + 1)
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
}

// Clear drops every item. The backing store is kept.
func (l *List[T]) Clear() {
	var zero T
	for i := 0; i < l.length; i++ {
		l.items[i] = zero
	}
	l.length = 0
}

// Snapshot returns a copy of the held items in current order.
func (l *List[T]) Snapshot() []T {
	out := make([]T, l.length)
	copy(out, l.items[:l.length])
	return out
}

// grow doubles the backing store, never below eight slots.
func (l *List[T]) grow() {
	newLen := max(8, 2*len(l.items))
	items := make([]T, newLen)
	copy(items, l.items[:l.length])
	l.items = items
}

func (l *List[T]) checkIndex(index int) {
	if index < 0 || index >= l.length {
		panic(fmt.Sprintf("collection: index %d out of range [0,%d)", index, l.length))
	}
}

func (l *List[T]) checkNotEmpty(op string) {
	if l.length == 0 {
		panic(fmt.Sprintf("collection: %s on empty list", op))
	}
}
