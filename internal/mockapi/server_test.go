package mockapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/api"
	"nebula/internal/common/config"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// newTestServer spins up a fresh seeded server and a real API client
// pointed at it, so every test runs the full wire round trip.
func newTestServer(t *testing.T) *api.Client {
	t.Helper()
	srv := NewServer(config.ServerConfig{}, logger.NewTestLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.NewClient(ts.URL+"/api/v1", 5*time.Second, logger.NewTestLogger(t))
}

func TestListBusinessesReturnsSeededDirectory(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListBusinesses(context.Background(), api.BusinessListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, 5, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestListBusinessesFiltersByIndustry(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListBusinesses(context.Background(), api.BusinessListParams{
		Page: 1, Limit: 10, Industry: "Manufacturing",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	for _, b := range resp.Data {
		assert.Equal(t, "Manufacturing", b.Industry)
	}
}

func TestListBusinessesSearchesNameAndDescription(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListBusinesses(context.Background(), api.BusinessListParams{
		Page: 1, Limit: 10, Query: "nordic",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "b-nordic", resp.Data[0].ID)
}

func TestListBusinessesSortsByTrustScoreDesc(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListBusinesses(context.Background(), api.BusinessListParams{
		Page: 1, Limit: 10, SortBy: "trustScore", SortOrder: "desc",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "b-nordic", resp.Data[0].ID)
	for i := 1; i < len(resp.Data); i++ {
		assert.GreaterOrEqual(t, resp.Data[i-1].TrustScore, resp.Data[i].TrustScore)
	}
}

func TestListBusinessesPaginates(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListBusinesses(context.Background(), api.BusinessListParams{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 5, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestGetBusinessByID(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.GetBusiness(context.Background(), "b-baltic")
	require.NoError(t, err)
	assert.Equal(t, "Baltic Freight", resp.Data.Name)
}

func TestGetUnknownBusinessIs404(t *testing.T) {
	client := newTestServer(t)

	_, err := client.GetBusiness(context.Background(), "b-nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "business not found", err.Error())
}

func TestUpdateOwnBusinessKeepsTrustScoreServerOwned(t *testing.T) {
	client := newTestServer(t)

	before, err := client.GetCurrentBusiness(context.Background())
	require.NoError(t, err)

	name := "Demo Industries GmbH"
	resp, err := client.UpdateBusiness(context.Background(), before.Data.ID, models.BusinessUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Demo Industries GmbH", resp.Data.Name)
	assert.Equal(t, before.Data.TrustScore, resp.Data.TrustScore)
}

func TestServiceAddAndRemoveRoundTrip(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.AddService(context.Background(), "b-nebula-demo", "Anodizing")
	require.NoError(t, err)
	assert.Contains(t, resp.Data.Services, "Anodizing")

	resp, err = client.RemoveService(context.Background(), "b-nebula-demo", "Anodizing")
	require.NoError(t, err)
	assert.NotContains(t, resp.Data.Services, "Anodizing")
}

func TestUploadLogoReturnsServedPath(t *testing.T) {
	client := newTestServer(t)

	url, err := client.UploadLogo(context.Background(), "b-nebula-demo", "logo.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/logos/"))
}

func TestPendingRequestsListOnlyPending(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListConnectionRequests(context.Background(), api.ConnectionListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	for _, conn := range resp.Data {
		assert.Equal(t, models.ConnectionPending, conn.Status)
		assert.NotEmpty(t, conn.Requester.Name, "requester snapshot should be expanded")
	}
}

func TestAcceptConnectionIsWriteOnce(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.AcceptConnectionRequest(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionAccepted, resp.Data.Status)

	_, err = client.AcceptConnectionRequest(context.Background(), "c-1")
	require.Error(t, err)
	var apiErr *apperrors.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestRejectAfterAcceptConflicts(t *testing.T) {
	client := newTestServer(t)

	_, err := client.AcceptConnectionRequest(context.Background(), "c-2")
	require.NoError(t, err)

	_, err = client.RejectConnectionRequest(context.Background(), "c-2")
	require.Error(t, err)
	var apiErr *apperrors.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestSendConnectionRequestCreatesPending(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.SendConnectionRequest(context.Background(), api.SendConnectionInput{
		RecipientID: "b-baltic",
		Message:     "Interested in your freight routes.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, resp.Data.Status)
	assert.Equal(t, "b-baltic", resp.Data.RecipientID)
}

func TestSendConnectionRequestRejectsMissingRecipient(t *testing.T) {
	client := newTestServer(t)

	_, err := client.SendConnectionRequest(context.Background(), api.SendConnectionInput{RecipientID: ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestNotificationsCarryUnreadCount(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListNotifications(context.Background(), api.NotificationListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, 2, resp.UnreadCount)
}

func TestUnreadOnlyFilterStillCountsAll(t *testing.T) {
	client := newTestServer(t)

	resp, err := client.ListNotifications(context.Background(), api.NotificationListParams{
		Page: 1, Limit: 10, UnreadOnly: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.UnreadCount)
}

func TestMarkReadUpdatesCountIdempotently(t *testing.T) {
	client := newTestServer(t)

	require.NoError(t, client.MarkNotificationRead(context.Background(), "n-1"))
	require.NoError(t, client.MarkNotificationRead(context.Background(), "n-1"))

	resp, err := client.ListNotifications(context.Background(), api.NotificationListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UnreadCount)
}

func TestMarkAllReadClearsEverything(t *testing.T) {
	client := newTestServer(t)

	require.NoError(t, client.MarkAllNotificationsRead(context.Background()))

	resp, err := client.ListNotifications(context.Background(), api.NotificationListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.UnreadCount)
	for _, n := range resp.Data {
		assert.True(t, n.Read)
	}
}

func TestMediaUploadAndDeleteRoundTrip(t *testing.T) {
	client := newTestServer(t)

	uploaded, err := client.UploadMedia(context.Background(), "b-nebula-demo", "floor.jpg",
		strings.NewReader("jpg-bytes"), models.UploadMetadata{Title: "New floor"})
	require.NoError(t, err)
	assert.Equal(t, "New floor", uploaded.Data.Title)
	assert.Equal(t, "image", uploaded.Data.Type)

	list, err := client.ListMedia(context.Background(), "b-nebula-demo")
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)

	require.NoError(t, client.DeleteMedia(context.Background(), "b-nebula-demo", uploaded.Data.ID))

	list, err = client.ListMedia(context.Background(), "b-nebula-demo")
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestMockAuthSessionRoutes(t *testing.T) {
	client := newTestServer(t)

	_, err := client.GetSession(context.Background())
	require.Error(t, err)
	var apiErr *apperrors.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	logged, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "auth0|123456789", logged.Data.Sub)

	session, err := client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo@nebula-mvp.com", session.Data.Email)

	require.NoError(t, client.Logout(context.Background()))

	_, err = client.GetSession(context.Background())
	require.Error(t, err)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestProfileRoundTrip(t *testing.T) {
	client := newTestServer(t)

	profile, err := client.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "auth0|123456789", profile.Data.Sub)

	name := "Demo R. User"
	updated, err := client.UpdateProfile(context.Background(), api.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Demo R. User", updated.Data.Name)
	assert.Equal(t, "demo@nebula-mvp.com", updated.Data.Email)
}
