package inputmap

import (
	"sync"

	"github.com/dshills/inputkit/internal/host"
)

// owners records the native objects wrapped by a live handle, by ID.
// An object leaves the set when its handle is destroyed.
var owners = struct {
	mu  sync.Mutex
	ids map[string]struct{}
}{ids: make(map[string]struct{})}

func own(native host.Object) {
	owners.mu.Lock()
	defer owners.mu.Unlock()

	owners.ids[native.ID()] = struct{}{}
}

// owned reports whether a live handle wraps native.
func owned(native host.Object) bool {
	owners.mu.Lock()
	defer owners.mu.Unlock()

	_, ok := owners.ids[native.ID()]
	return ok
}

func disown(native host.Object) {
	owners.mu.Lock()
	defer owners.mu.Unlock()

	delete(owners.ids, native.ID())
}
