package store

import (
	"context"
	"sync"

	"nebula/internal/api"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// DirectoryAPI is the slice of the API client the directory store uses.
type DirectoryAPI interface {
	ListBusinesses(ctx context.Context, params api.BusinessListParams) (*api.BusinessListResponse, error)
}

// BusinessDirectorySnapshot is one consistent view of the directory state.
type BusinessDirectorySnapshot struct {
	Businesses []models.Business
	Pagination models.Pagination
	IsLoading  bool
	Err        error
}

// BusinessDirectoryStore owns the searchable, paginated business listing.
type BusinessDirectoryStore struct {
	api    DirectoryAPI
	logger logger.Logger

	mu         sync.Mutex
	generation uint64
	params     api.BusinessListParams
	businesses []models.Business
	pagination models.Pagination
	isLoading  bool
	err        error

	emitter emitter
}

func NewBusinessDirectoryStore(client DirectoryAPI, params api.BusinessListParams, log logger.Logger) *BusinessDirectoryStore {
	return &BusinessDirectoryStore{
		api:    client,
		params: params,
		logger: log.WithFields(map[string]interface{}{"store": "directory"}),
	}
}

// SetParams replaces the listing parameters (page, filters, sort) and
// issues a fresh fetch, superseding any fetch still in flight.
func (s *BusinessDirectoryStore) SetParams(ctx context.Context, params api.BusinessListParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.Refetch(ctx)
}

// Refetch loads the current page. Only the result of the most recently
// issued fetch is applied.
func (s *BusinessDirectoryStore) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	params := s.params
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.ListBusinesses(ctx, params)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	if err != nil {
		s.err = err
		s.logger.WithError(err).Error("directory fetch failed", map[string]interface{}{"page": params.Page})
	} else {
		s.businesses = resp.Data
		s.pagination = resp.Pagination
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// Snapshot returns a copy of the current state.
func (s *BusinessDirectoryStore) Snapshot() BusinessDirectorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BusinessDirectorySnapshot{
		Businesses: append([]models.Business(nil), s.businesses...),
		Pagination: s.pagination,
		IsLoading:  s.isLoading,
		Err:        s.err,
	}
}

// OnChange registers cb for state changes; the returned function
// unsubscribes.
func (s *BusinessDirectoryStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
