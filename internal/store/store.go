// Package store holds the per-resource client state the UI renders from:
// the current list or entity, pagination, loading flag and last error.
// Each store owns its state exclusively; mutations go through the store's
// own methods and reconcile local lists only after the backend confirmed
// the operation.
//
// Fetches are tagged with a generation number. When a refetch supersedes
// one still in flight, the stale result is dropped on arrival, so
// out-of-order responses can never overwrite newer state.
package store

import "sync"

// emitter notifies subscribers that a store's state changed. Callbacks run
// on the goroutine that completed the change.
type emitter struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func (e *emitter) subscribe(cb func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs == nil {
		e.subs = make(map[int]func())
	}
	id := e.next
	e.next++
	e.subs[id] = cb
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

func (e *emitter) emit() {
	e.mu.Lock()
	cbs := make([]func(), 0, len(e.subs))
	for _, cb := range e.subs {
		cbs = append(cbs, cb)
	}
	e.mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}
