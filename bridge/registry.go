package bridge

import (
	"errors"
	"sync"
)

var (
	mu     sync.RWMutex
	global *Bridge
)

// Register makes b the bridge returned by Get and Safe.
func Register(b *Bridge) {
	mu.Lock()
	global = b
	mu.Unlock()
}

// Get returns the registered bridge. Panics if Register was never called.
func Get() *Bridge {
	b, err := Safe()
	if err != nil {
		panic("cefview: no bridge registered, call bridge.Register first")
	}
	return b
}

// Safe returns the registered bridge and an error instead of panicking.
func Safe() (*Bridge, error) {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return nil, errors.New("cefview: no bridge registered")
	}
	return global, nil
}
