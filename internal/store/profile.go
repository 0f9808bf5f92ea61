package store

import (
	"context"
	"io"
	"sync"

	"nebula/internal/api"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// ProfileAPI is the slice of the API client the profile store uses.
type ProfileAPI interface {
	GetCurrentBusiness(ctx context.Context) (*api.BusinessResponse, error)
	UpdateBusiness(ctx context.Context, id string, update models.BusinessUpdate) (*api.BusinessResponse, error)
	UploadLogo(ctx context.Context, id, filename string, content io.Reader) (string, error)
}

// BusinessProfileSnapshot is one consistent view of the profile state.
type BusinessProfileSnapshot struct {
	Business    *models.Business
	IsLoading   bool
	IsUpdating  bool
	IsUploading bool
	Err         error
}

// BusinessProfileStore owns the authenticated user's business profile.
// Updates send only the provided fields and then replace the local entity
// with the server's full representation, so server-computed fields like
// the trust score stay authoritative.
type BusinessProfileStore struct {
	api    ProfileAPI
	logger logger.Logger

	mu          sync.Mutex
	generation  uint64
	business    *models.Business
	isLoading   bool
	isUpdating  bool
	isUploading bool
	err         error

	emitter emitter
}

func NewBusinessProfileStore(client ProfileAPI, log logger.Logger) *BusinessProfileStore {
	return &BusinessProfileStore{
		api:    client,
		logger: log.WithFields(map[string]interface{}{"store": "profile"}),
	}
}

// Load fetches the current user's business.
func (s *BusinessProfileStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.GetCurrentBusiness(ctx)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	if err != nil {
		s.err = err
		s.logger.WithError(err).Error("profile fetch failed", nil)
	} else {
		biz := resp.Data
		s.business = &biz
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// UpdateProfile sends the provided fields and replaces local state with
// the server's returned representation. Not a client-side merge.
func (s *BusinessProfileStore) UpdateProfile(ctx context.Context, update models.BusinessUpdate) error {
	s.mu.Lock()
	if s.business == nil {
		s.mu.Unlock()
		return apperrors.NewPreconditionFailed("no business profile loaded")
	}
	id := s.business.ID
	s.isUpdating = true
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.UpdateBusiness(ctx, id, update)

	s.mu.Lock()
	s.isUpdating = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return err
	}
	biz := resp.Data
	s.business = &biz
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// UploadLogo uploads the file and patches only the local logo field with
// the returned URL.
func (s *BusinessProfileStore) UploadLogo(ctx context.Context, filename string, content io.Reader) (string, error) {
	s.mu.Lock()
	if s.business == nil {
		s.mu.Unlock()
		return "", apperrors.NewPreconditionFailed("no business profile loaded")
	}
	id := s.business.ID
	s.isUploading = true
	s.mu.Unlock()
	s.emitter.emit()

	url, err := s.api.UploadLogo(ctx, id, filename, content)

	s.mu.Lock()
	s.isUploading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return "", err
	}
	if s.business != nil {
		s.business.Logo = url
	}
	s.mu.Unlock()
	s.emitter.emit()
	return url, nil
}

// AddService appends a service locally and sends the full replacement
// array. Duplicates are not filtered here; uniqueness is the backend's
// call.
func (s *BusinessProfileStore) AddService(ctx context.Context, service string) error {
	return s.replaceList(ctx, listServices, appendValue, service)
}

// RemoveService removes a service by value and sends the full replacement
// array. Removal by value assumes the backend kept services unique.
func (s *BusinessProfileStore) RemoveService(ctx context.Context, service string) error {
	return s.replaceList(ctx, listServices, filterValue, service)
}

// AddCertification appends a certification and sends the full replacement
// array.
func (s *BusinessProfileStore) AddCertification(ctx context.Context, certification string) error {
	return s.replaceList(ctx, listCertifications, appendValue, certification)
}

// RemoveCertification removes a certification by value.
func (s *BusinessProfileStore) RemoveCertification(ctx context.Context, certification string) error {
	return s.replaceList(ctx, listCertifications, filterValue, certification)
}

type listKind int

const (
	listServices listKind = iota
	listCertifications
)

func appendValue(existing []string, v string) []string {
	out := append(append([]string(nil), existing...), v)
	return out
}

func filterValue(existing []string, v string) []string {
	out := make([]string, 0, len(existing))
	for _, e := range existing {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}

func (s *BusinessProfileStore) replaceList(ctx context.Context, kind listKind, op func([]string, string) []string, value string) error {
	s.mu.Lock()
	if s.business == nil {
		s.mu.Unlock()
		return apperrors.NewPreconditionFailed("no business profile loaded")
	}
	var existing []string
	if kind == listServices {
		existing = s.business.Services
	} else {
		existing = s.business.Certifications
	}
	s.mu.Unlock()

	next := op(existing, value)
	update := models.BusinessUpdate{}
	if kind == listServices {
		update.Services = &next
	} else {
		update.Certifications = &next
	}
	return s.UpdateProfile(ctx, update)
}

// Snapshot returns a copy of the current state.
func (s *BusinessProfileStore) Snapshot() BusinessProfileSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := BusinessProfileSnapshot{
		IsLoading:   s.isLoading,
		IsUpdating:  s.isUpdating,
		IsUploading: s.isUploading,
		Err:         s.err,
	}
	if s.business != nil {
		biz := *s.business
		snap.Business = &biz
	}
	return snap
}

// OnChange registers cb for state changes.
func (s *BusinessProfileStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
