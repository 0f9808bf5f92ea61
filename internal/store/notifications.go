package store

import (
	"context"
	"sync"

	"nebula/internal/api"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// NotificationsAPI is the slice of the API client the notifications store
// uses.
type NotificationsAPI interface {
	ListNotifications(ctx context.Context, params api.NotificationListParams) (*api.NotificationListResponse, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// NotificationsSnapshot is one consistent view of the notifications state.
type NotificationsSnapshot struct {
	Notifications []models.Notification
	UnreadCount   int
	Pagination    models.Pagination
	IsLoading     bool
	Err           error
}

// NotificationsStore owns the notification list and the unread badge
// count. Read flags only ever flip false to true from here.
type NotificationsStore struct {
	api    NotificationsAPI
	logger logger.Logger

	mu            sync.Mutex
	generation    uint64
	params        api.NotificationListParams
	notifications []models.Notification
	unreadCount   int
	pagination    models.Pagination
	isLoading     bool
	err           error

	emitter emitter
}

func NewNotificationsStore(client NotificationsAPI, params api.NotificationListParams, log logger.Logger) *NotificationsStore {
	return &NotificationsStore{
		api:    client,
		params: params,
		logger: log.WithFields(map[string]interface{}{"store": "notifications"}),
	}
}

// SetParams replaces the listing parameters and issues a fresh fetch.
func (s *NotificationsStore) SetParams(ctx context.Context, params api.NotificationListParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
	s.Refetch(ctx)
}

// Refetch loads the current page of notifications.
func (s *NotificationsStore) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	params := s.params
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()
	s.emitter.emit()

	resp, err := s.api.ListNotifications(ctx, params)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.isLoading = false
	if err != nil {
		s.err = err
		s.logger.WithError(err).Error("notifications fetch failed", nil)
	} else {
		s.notifications = resp.Data
		s.unreadCount = resp.UnreadCount
		s.pagination = resp.Pagination
	}
	s.mu.Unlock()
	s.emitter.emit()
}

// MarkRead flips one notification to read after backend confirmation. The
// unread count drops by at most one and never below zero; marking an
// already-read notification changes nothing.
func (s *NotificationsStore) MarkRead(ctx context.Context, id string) error {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			if s.unreadCount > 0 {
				s.unreadCount--
			}
		}
		break
	}
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// MarkAllRead flips every local notification to read and zeroes the badge.
func (s *NotificationsStore) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.emitter.emit()
		return err
	}

	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unreadCount = 0
	s.mu.Unlock()
	s.emitter.emit()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *NotificationsStore) Snapshot() NotificationsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NotificationsSnapshot{
		Notifications: append([]models.Notification(nil), s.notifications...),
		UnreadCount:   s.unreadCount,
		Pagination:    s.pagination,
		IsLoading:     s.isLoading,
		Err:           s.err,
	}
}

// OnChange registers cb for state changes.
func (s *NotificationsStore) OnChange(cb func()) func() {
	return s.emitter.subscribe(cb)
}
