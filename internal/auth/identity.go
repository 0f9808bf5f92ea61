// Package auth abstracts where the current user identity comes from. The
// data-fetching layer only ever sees the IdentitySource capability; whether
// it is backed by the real backend session or the local mock shim is a
// wiring decision.
package auth

import (
	"context"
	"sync"

	"nebula/internal/models"
)

// IdentitySource exposes the authenticated user, if any, and change
// notification for consumers that render identity-dependent state.
type IdentitySource interface {
	// CurrentUser returns the signed-in user or nil.
	CurrentUser() *models.User
	// OnChange registers cb for identity changes and returns an
	// unsubscribe function.
	OnChange(cb func(*models.User)) func()
}

// notifier is the shared subscriber bookkeeping of both adapters.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(*models.User)
}

func (n *notifier) subscribe(cb func(*models.User)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(*models.User))
	}
	id := n.next
	n.next++
	n.subs[id] = cb
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(user *models.User) {
	n.mu.Lock()
	cbs := make([]func(*models.User), 0, len(n.subs))
	for _, cb := range n.subs {
		cbs = append(cbs, cb)
	}
	n.mu.Unlock()
	for _, cb := range cbs {
		cb(user)
	}
}

// Loader is implemented by sources that read session state once at startup.
type Loader interface {
	Load(ctx context.Context) error
}
