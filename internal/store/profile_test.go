package store

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/api"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

type stubProfileAPI struct {
	current    models.Business
	currentErr error
	updateErr  error
	uploadErr  error
	lastUpdate models.BusinessUpdate
	logoURL    string
}

func (s *stubProfileAPI) GetCurrentBusiness(ctx context.Context) (*api.BusinessResponse, error) {
	if s.currentErr != nil {
		return nil, s.currentErr
	}
	return &api.BusinessResponse{Data: s.current}, nil
}

// UpdateBusiness mimics the backend: apply the provided fields on top of
// the stored entity and bump the server-owned trust score.
func (s *stubProfileAPI) UpdateBusiness(ctx context.Context, id string, update models.BusinessUpdate) (*api.BusinessResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.lastUpdate = update
	if update.Name != nil {
		s.current.Name = *update.Name
	}
	if update.Description != nil {
		s.current.Description = *update.Description
	}
	if update.Services != nil {
		s.current.Services = *update.Services
	}
	if update.Certifications != nil {
		s.current.Certifications = *update.Certifications
	}
	s.current.TrustScore += 5
	return &api.BusinessResponse{Data: s.current}, nil
}

func (s *stubProfileAPI) UploadLogo(ctx context.Context, id, filename string, content io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	io.Copy(io.Discard, content)
	return s.logoURL, nil
}

func loadedProfileStore(t *testing.T, stub *stubProfileAPI) *BusinessProfileStore {
	t.Helper()
	s := NewBusinessProfileStore(stub, logger.NewTestLogger(t))
	s.Load(context.Background())
	require.NoError(t, s.Snapshot().Err)
	return s
}

func demoBusiness() models.Business {
	return models.Business{
		ID:         "b-1",
		Name:       "Nordic Timber",
		TrustScore: 70,
		Services:   []string{"Sawmilling"},
	}
}

func TestUpdateProfileReplacesEntityWithServerState(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness()}
	s := loadedProfileStore(t, stub)

	name := "Nordic Timber Group"
	require.NoError(t, s.UpdateProfile(context.Background(), models.BusinessUpdate{Name: &name}))

	snap := s.Snapshot()
	require.NotNil(t, snap.Business)
	assert.Equal(t, "Nordic Timber Group", snap.Business.Name)
	// Trust score comes back from the server, never from the update payload.
	assert.Equal(t, 75, snap.Business.TrustScore)
	assert.False(t, snap.IsUpdating)
}

func TestUpdateProfileWithoutLoadFails(t *testing.T) {
	s := NewBusinessProfileStore(&stubProfileAPI{}, logger.NewTestLogger(t))

	name := "x"
	err := s.UpdateProfile(context.Background(), models.BusinessUpdate{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodePreconditionFailed, apperrors.CodeOf(err))
}

func TestFailedUpdateKeepsLocalEntity(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness()}
	s := loadedProfileStore(t, stub)
	stub.updateErr = apperrors.NewAPIError(500, "boom")

	name := "Renamed"
	err := s.UpdateProfile(context.Background(), models.BusinessUpdate{Name: &name})
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "Nordic Timber", snap.Business.Name)
	assert.Equal(t, err, snap.Err)
}

func TestAddServiceSendsFullReplacementArray(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness()}
	s := loadedProfileStore(t, stub)

	require.NoError(t, s.AddService(context.Background(), "Kiln Drying"))

	require.NotNil(t, stub.lastUpdate.Services)
	assert.Equal(t, []string{"Sawmilling", "Kiln Drying"}, *stub.lastUpdate.Services)
	assert.Equal(t, []string{"Sawmilling", "Kiln Drying"}, s.Snapshot().Business.Services)
}

func TestRemoveLastServiceSendsEmptyArray(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness()}
	s := loadedProfileStore(t, stub)

	require.NoError(t, s.RemoveService(context.Background(), "Sawmilling"))

	// An explicit empty slice, not an omitted field.
	require.NotNil(t, stub.lastUpdate.Services)
	assert.Empty(t, *stub.lastUpdate.Services)
	assert.Empty(t, s.Snapshot().Business.Services)
}

func TestAddCertificationAllowsDuplicates(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness()}
	s := loadedProfileStore(t, stub)

	require.NoError(t, s.AddCertification(context.Background(), "ISO 9001"))
	require.NoError(t, s.AddCertification(context.Background(), "ISO 9001"))

	require.NotNil(t, stub.lastUpdate.Certifications)
	assert.Equal(t, []string{"ISO 9001", "ISO 9001"}, *stub.lastUpdate.Certifications)
}

func TestUploadLogoPatchesOnlyLogo(t *testing.T) {
	stub := &stubProfileAPI{current: demoBusiness(), logoURL: "/uploads/logos/new.png"}
	s := loadedProfileStore(t, stub)

	url, err := s.UploadLogo(context.Background(), "new.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logos/new.png", url)

	snap := s.Snapshot()
	assert.Equal(t, "/uploads/logos/new.png", snap.Business.Logo)
	assert.Equal(t, "Nordic Timber", snap.Business.Name)
	assert.Equal(t, 70, snap.Business.TrustScore)
	assert.False(t, snap.IsUploading)
}
