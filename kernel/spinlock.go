package kernel

import (
	"runtime"
	"sync/atomic"
)

// Spinlock is a busy-wait mutual exclusion lock guarding a value of type T.
//
// It is meant for code that runs without a scheduler able to park a waiter
// (boot services, interrupt context): contenders spin instead of sleeping.
// The lock is neither reentrant nor fair, and it has no poisoning: a guard
// that is never released leaves every later Lock spinning forever.
//
// The zero value is an unlocked Spinlock holding the zero T.
type Spinlock[T any] struct {
	_      [0]func() // not comparable; atomic.Bool's noCopy flags copies.
	locked atomic.Bool
	value  T
}

// NewSpinlock returns an unlocked Spinlock guarding value.
func NewSpinlock[T any](value T) *Spinlock[T] {
	return &Spinlock[T]{value: value}
}

// Lock blocks until the lock is acquired and returns the guard for it.
//
// Acquisition is test-and-test-and-set: one CAS attempt, then plain loads
// until the flag reads false, then another CAS.
func (l *Spinlock[T]) Lock() *Guard[T] {
	for !l.locked.CompareAndSwap(false, true) {
		for l.locked.Load() {
			cpuRelax()
		}
	}
	return &Guard[T]{l: l}
}

// TryLock makes a single acquisition attempt.
func (l *Spinlock[T]) TryLock() (*Guard[T], bool) {
	if !l.locked.CompareAndSwap(false, true) {
		return nil, false
	}
	return &Guard[T]{l: l}, true
}

// Do runs fn with exclusive access to the guarded value. The lock is
// released on every exit path of fn, panics included.
func (l *Spinlock[T]) Do(fn func(*T)) {
	g := l.Lock()
	defer g.Unlock()
	fn(g.Value())
}

// Locked reports whether a guard is currently live.
func (l *Spinlock[T]) Locked() bool {
	return l.locked.Load()
}

// Guard is a live acquisition of a Spinlock.
//
// A Guard belongs to the goroutine that acquired it and must not be shared.
type Guard[T any] struct {
	l        *Spinlock[T]
	released bool
}

// Value returns the guarded value. The pointer must not be retained past
// Unlock.
func (g *Guard[T]) Value() *T {
	if g.released {
		panic("kernel: use of released guard")
	}
	return &g.l.value
}

// Unlock releases the lock. Every write made through Value happens before
// the next successful Lock.
func (g *Guard[T]) Unlock() {
	if g.released {
		panic("kernel: unlock of released guard")
	}
	g.released = true
	g.l.locked.Store(false)
}

// cpuRelax is the spin-wait hint. Go exposes no PAUSE instruction, so the
// waiter yields its P instead.
func cpuRelax() {
	runtime.Gosched()
}
