package singleflight

import (
	"errors"
	"sync"
)

// ErrInFlight is returned by TryDo when the key is already being worked on.
var ErrInFlight = errors.New("already in flight")

func New[T comparable]() *Group[T] {
	return &Group[T]{
		calls: make(map[T]struct{}),
	}
}

type Group[T comparable] struct {
	mu    sync.Mutex
	calls map[T]struct{}
}

// TryDo will execute the function if the key is not locked
func (g *Group[T]) TryDo(key T, fn func() error) error {
	if !g.lock(key) {
		return ErrInFlight
	}
	defer g.unlock(key)

	return fn()
}

// InFlight reports whether a call for key is running.
func (g *Group[T]) InFlight(key T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.calls[key]
	return ok
}

// lock returns true if the lock was performed
func (g *Group[T]) lock(key T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, wasLocked := g.calls[key]
	if wasLocked {
		return false
	}

	g.calls[key] = struct{}{}
	return true
}

func (g *Group[T]) unlock(key T) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.calls, key)
}
