package store

import (
	"context"
	"sync"

	"nebula/internal/api"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// ConnectionsAPI is the slice of the API client the connections store uses.
type ConnectionsAPI interface {
	ListConnections(ctx context.Context, params api.ConnectionListParams) (*api.ConnectionListResponse, error)
	SendConnectionRequest(ctx context.Context, in api.SendConnectionInput) (*api.ConnectionResponse, error)
	RemoveConnection(ctx context.Context, id string) error
}

// ConnectionsSnapshot is one consistent view of the connections list.
type ConnectionsSnapshot struct {
	Connections []models.Connection
	Pagination  models.Pagination
	IsLoading   bool
	Err         error
}

// ConnectionsStore owns the list of accepted connections. Send creates an
// outgoing PENDING request and does not touch the local list; the new
// connection only appears here once accepted and refetched.
type ConnectionsStore struct {
	api    ConnectionsAPI
	logger logger.Logger

	mu          sync.Mutex
	generation  uint64
	params      api.ConnectionListParams
	connections []models.Connection
	pagination  models.Pagination
	isLoading   bool
	err         error

	emitter emitter
}

func NewConnectionsStore(client ConnectionsAPI, params api.ConnectionListParams, log logger.Logger) *ConnectionsStore {
	return &ConnectionsStore{
		api:    client,
		params: params,
		logger: log.WithFields(map[string]interface{}{"store": "connections"}),
	}
}

// SetParams replaces the listing parameters and issues a fresh fetch.
func (s *ConnectionsStore) SetParams(ctx context.Context, params api.ConnectionListParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.Refetch(ctx)
}

// Refetch loads the current page of connections.
func (s *ConnectionsStore) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	params := s.params
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.ListConnections(ctx, params)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	if err != nil {
		s.err = err
		s.logger.WithError(err).Error("connections fetch failed", nil)
	} else {
		s.connections = resp.Data
		s.pagination = resp.Pagination
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// Send creates a new connection request and returns the PENDING
// connection.
func (s *ConnectionsStore) Send(ctx context.Context, recipientID, message string) (*models.Connection, error) {
	resp, err := s.api.SendConnectionRequest(ctx, api.SendConnectionInput{
		RecipientID: recipientID,
		Message:     message,
	})
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return nil, err
	}
	return &resp.Data, nil
}

// Remove deletes a connection, then drops it from the local list.
func (s *ConnectionsStore) Remove(ctx context.Context, id string) error {
	if err := s.api.RemoveConnection(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return err
	}

	s.mu.Lock()
	kept := s.connections[:0]
	removed := false
	for _, c := range s.connections {
		if c.ID == id && !removed {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.connections = kept
	if removed {
		s.pagination = s.pagination.RemoveOne()
	}
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *ConnectionsStore) Snapshot() ConnectionsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConnectionsSnapshot{
		Connections: append([]models.Connection(nil), s.connections...),
		Pagination:  s.pagination,
		IsLoading:   s.isLoading,
		Err:         s.err,
	}
}

// OnChange registers cb for state changes.
func (s *ConnectionsStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
