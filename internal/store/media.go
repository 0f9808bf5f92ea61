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

// MediaAPI is the slice of the API client the media store uses.
type MediaAPI interface {
	ListMedia(ctx context.Context, businessID string) (*api.MediaListResponse, error)
	ListDocuments(ctx context.Context, businessID string) (*api.DocumentListResponse, error)
	UploadMedia(ctx context.Context, businessID, filename string, content io.Reader, meta models.UploadMetadata) (*api.MediaResponse, error)
	UploadDocument(ctx context.Context, businessID, filename string, content io.Reader, meta models.UploadMetadata) (*api.DocumentResponse, error)
	DeleteMedia(ctx context.Context, businessID, mediaID string) error
	DeleteDocument(ctx context.Context, businessID, documentID string) error
}

// MediaSnapshot is one consistent view of the media and documents state.
type MediaSnapshot struct {
	Media       []models.MediaItem
	Documents   []models.DocumentItem
	IsLoading   bool
	IsUploading bool
	Err         error
}

// MediaStore owns one business's media gallery and document list. Uploads
// append the server-returned item; deletes filter by id. Upload then local
// append is at-least-once and non-atomic: a confirmed upload stays
// uploaded even if the caller's context dies before the append.
type MediaStore struct {
	api        MediaAPI
	businessID string
	logger     logger.Logger

	mu          sync.Mutex
	generation  uint64
	media       []models.MediaItem
	documents   []models.DocumentItem
	isLoading   bool
	isUploading bool
	err         error

	emitter emitter
}

func NewMediaStore(client MediaAPI, businessID string, log logger.Logger) *MediaStore {
	return &MediaStore{
		api:        client,
		businessID: businessID,
		logger:     log.WithFields(map[string]interface{}{"store": "media", "businessId": businessID}),
	}
}

// Load fetches media and documents together.
func (s *MediaStore) Load(ctx context.Context) {
	if s.businessID == "" {
		s.mu.Lock()
		s.err = apperrors.NewPreconditionFailed("no business id provided")
		s.mu.Unlock()
		s.emitter.emit()
		return
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	mediaResp, mediaErr := s.api.ListMedia(ctx, s.businessID)
	docsResp, docsErr := s.api.ListDocuments(ctx, s.businessID)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	switch {
	case mediaErr != nil:
		s.err = mediaErr
		s.logger.WithError(mediaErr).Error("media fetch failed", nil)
	case docsErr != nil:
		s.err = docsErr
		s.logger.WithError(docsErr).Error("documents fetch failed", nil)
	default:
		s.media = mediaResp.Data
		s.documents = docsResp.Data
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// UploadMedia uploads a file and appends the created item locally.
func (s *MediaStore) UploadMedia(ctx context.Context, filename string, content io.Reader, meta models.UploadMetadata) (*models.MediaItem, error) {
	if s.businessID == "" {
		return nil, apperrors.NewPreconditionFailed("no business id provided")
	}

	s.setUploading(true)
	resp, err := s.api.UploadMedia(ctx, s.businessID, filename, content, meta)
	s.setUploading(false)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.media = append(s.media, resp.Data)
	s.mu.Unlock()
	s.emitter.emit()
	return &resp.Data, nil
}

// UploadDocument uploads a file and appends the created document locally.
func (s *MediaStore) UploadDocument(ctx context.Context, filename string, content io.Reader, meta models.UploadMetadata) (*models.DocumentItem, error) {
	if s.businessID == "" {
		return nil, apperrors.NewPreconditionFailed("no business id provided")
	}

	s.setUploading(true)
	resp, err := s.api.UploadDocument(ctx, s.businessID, filename, content, meta)
	s.setUploading(false)
	if err != nil {
		s.recordErr(err)
		return nil, err
	}

	s.mu.Lock()
	s.documents = append(s.documents, resp.Data)
	s.mu.Unlock()
	s.emitter.emit()
	return &resp.Data, nil
}

// DeleteMedia removes a media item after backend confirmation.
func (s *MediaStore) DeleteMedia(ctx context.Context, mediaID string) error {
	if err := s.api.DeleteMedia(ctx, s.businessID, mediaID); err != nil {
		s.recordErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.media[:0]
	for _, m := range s.media {
		if m.ID != mediaID {
			kept = append(kept, m)
		}
	}
	s.media = kept
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// DeleteDocument removes a document after backend confirmation.
func (s *MediaStore) DeleteDocument(ctx context.Context, documentID string) error {
	if err := s.api.DeleteDocument(ctx, s.businessID, documentID); err != nil {
		s.recordErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.documents[:0]
	for _, d := range s.documents {
		if d.ID != documentID {
			kept = append(kept, d)
		}
	}
	s.documents = kept
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

func (s *MediaStore) setUploading(v bool) {
	s.mu.Lock()
	s.isUploading = v
	s.mu.Unlock()
	s.emitter.emit()
}

func (s *MediaStore) recordErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.emitter.emit()
}

// Snapshot returns a copy of the current state.
func (s *MediaStore) Snapshot() MediaSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MediaSnapshot{
		Media:       append([]models.MediaItem(nil), s.media...),
		Documents:   append([]models.DocumentItem(nil), s.documents...),
		IsLoading:   s.isLoading,
		IsUploading: s.isUploading,
		Err:         s.err,
	}
}

// OnChange registers cb for state changes.
func (s *MediaStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
