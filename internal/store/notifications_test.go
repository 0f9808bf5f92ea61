package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/api"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

type stubNotificationsAPI struct {
	listResp   *api.NotificationListResponse
	listErr    error
	markErr    error
	markAllErr error
	marked     []string
	markedAll  int
}

func (s *stubNotificationsAPI) ListNotifications(ctx context.Context, params api.NotificationListParams) (*api.NotificationListResponse, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listResp, nil
}

func (s *stubNotificationsAPI) MarkNotificationRead(ctx context.Context, id string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, id)
	return nil
}

func (s *stubNotificationsAPI) MarkAllNotificationsRead(ctx context.Context) error {
	if s.markAllErr != nil {
		return s.markAllErr
	}
	s.markedAll++
	return nil
}

func mixedNotifications() *api.NotificationListResponse {
	return &api.NotificationListResponse{
		Data: []models.Notification{
			{ID: "n-1", Read: false},
			{ID: "n-2", Read: false},
			{ID: "n-3", Read: true},
		},
		UnreadCount: 2,
		Pagination:  models.Pagination{Page: 1, Limit: 10, Total: 3, TotalPages: 1},
	}
}

func newNotificationsUnderTest(t *testing.T, stub *stubNotificationsAPI) *NotificationsStore {
	t.Helper()
	s := NewNotificationsStore(stub, api.NotificationListParams{Page: 1, Limit: 10}, logger.NewTestLogger(t))
	s.Refetch(context.Background())
	return s
}

func TestMarkReadDecrementsUnreadOnce(t *testing.T) {
	stub := &stubNotificationsAPI{listResp: mixedNotifications()}
	s := newNotificationsUnderTest(t, stub)

	require.NoError(t, s.MarkRead(context.Background(), "n-1"))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.UnreadCount)
	assert.True(t, snap.Notifications[0].Read)
	assert.False(t, snap.Notifications[1].Read)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	stub := &stubNotificationsAPI{listResp: mixedNotifications()}
	s := newNotificationsUnderTest(t, stub)

	require.NoError(t, s.MarkRead(context.Background(), "n-1"))
	require.NoError(t, s.MarkRead(context.Background(), "n-1"))

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.UnreadCount)
}

func TestMarkReadOnAlreadyReadChangesNothing(t *testing.T) {
	stub := &stubNotificationsAPI{listResp: mixedNotifications()}
	s := newNotificationsUnderTest(t, stub)

	require.NoError(t, s.MarkRead(context.Background(), "n-3"))

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.UnreadCount)
}

func TestUnreadCountNeverGoesNegative(t *testing.T) {
	// Server-reported count can lag behind local reads.
	stub := &stubNotificationsAPI{listResp: &api.NotificationListResponse{
		Data:        []models.Notification{{ID: "n-1", Read: false}},
		UnreadCount: 0,
		Pagination:  models.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}}
	s := newNotificationsUnderTest(t, stub)

	require.NoError(t, s.MarkRead(context.Background(), "n-1"))

	assert.Equal(t, 0, s.Snapshot().UnreadCount)
}

func TestMarkAllReadZeroesBadge(t *testing.T) {
	stub := &stubNotificationsAPI{listResp: mixedNotifications()}
	s := newNotificationsUnderTest(t, stub)

	require.NoError(t, s.MarkAllRead(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, 0, snap.UnreadCount)
	for _, n := range snap.Notifications {
		assert.True(t, n.Read)
	}
	assert.Equal(t, 1, stub.markedAll)
}

func TestFailedMarkReadLeavesStateUntouched(t *testing.T) {
	stub := &stubNotificationsAPI{
		listResp: mixedNotifications(),
		markErr:  apperrors.NewAPIError(500, "boom"),
	}
	s := newNotificationsUnderTest(t, stub)

	err := s.MarkRead(context.Background(), "n-1")
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.UnreadCount)
	assert.False(t, snap.Notifications[0].Read)
	assert.Equal(t, err, snap.Err)
}
