package store

import (
	"context"
	"sync"

	"nebula/internal/api"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// RequestsAPI is the slice of the API client the requests store uses.
type RequestsAPI interface {
	ListConnectionRequests(ctx context.Context, params api.ConnectionListParams) (*api.ConnectionListResponse, error)
	AcceptConnectionRequest(ctx context.Context, id string) (*api.ConnectionResponse, error)
	RejectConnectionRequest(ctx context.Context, id string) (*api.ConnectionResponse, error)
}

// ConnectionRequestsSnapshot is one consistent view of the pending
// requests list.
type ConnectionRequestsSnapshot struct {
	Requests   []models.Connection
	Pagination models.Pagination
	IsLoading  bool
	Err        error
}

// ConnectionRequestsStore owns the inbox of pending connection requests.
// Accept and Reject remove the item locally only after the backend
// confirmed the transition; on failure the list is left untouched and the
// error is recorded.
type ConnectionRequestsStore struct {
	api    RequestsAPI
	logger logger.Logger

	mu         sync.Mutex
	generation uint64
	params     api.ConnectionListParams
	requests   []models.Connection
	pagination models.Pagination
	isLoading  bool
	err        error

	emitter emitter
}

func NewConnectionRequestsStore(client RequestsAPI, params api.ConnectionListParams, log logger.Logger) *ConnectionRequestsStore {
	return &ConnectionRequestsStore{
		api:    client,
		params: params,
		logger: log.WithFields(map[string]interface{}{"store": "connection-requests"}),
	}
}

// SetParams replaces the listing parameters and issues a fresh fetch.
func (s *ConnectionRequestsStore) SetParams(ctx context.Context, params api.ConnectionListParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.Refetch(ctx)
}

// Refetch loads the current page of pending requests.
func (s *ConnectionRequestsStore) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	params := s.params
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.ListConnectionRequests(ctx, params)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	if err != nil {
		s.err = err
		s.logger.WithError(err).Error("requests fetch failed", nil)
	} else {
		s.requests = resp.Data
		s.pagination = resp.Pagination
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// Accept confirms a pending request, then removes it from the local list
// and shrinks the pagination accordingly.
func (s *ConnectionRequestsStore) Accept(ctx context.Context, id string) error {
	return s.resolve(ctx, id, s.api.AcceptConnectionRequest)
}

// Reject declines a pending request with the same local reconciliation as
// Accept.
func (s *ConnectionRequestsStore) Reject(ctx context.Context, id string) error {
	return s.resolve(ctx, id, s.api.RejectConnectionRequest)
}

func (s *ConnectionRequestsStore) resolve(ctx context.Context, id string, action func(context.Context, string) (*api.ConnectionResponse, error)) error {
	if _, err := action(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return err
	}

	s.mu.Lock()
	kept := s.requests[:0]
	removed := false
	for _, r := range s.requests {
		if r.ID == id && !removed {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.requests = kept
	if removed {
		s.pagination = s.pagination.RemoveOne()
	}
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *ConnectionRequestsStore) Snapshot() ConnectionRequestsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConnectionRequestsSnapshot{
		Requests:   append([]models.Connection(nil), s.requests...),
		Pagination: s.pagination,
		IsLoading:  s.isLoading,
		Err:        s.err,
	}
}

// OnChange registers cb for state changes.
func (s *ConnectionRequestsStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
