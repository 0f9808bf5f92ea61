package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"nebula/internal/models"
)

// NotificationListParams paginates notifications; UnreadOnly restricts the
// listing to unread ones.
type NotificationListParams struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

func (p NotificationListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.UnreadOnly {
		q.Set("unreadOnly", "true")
	}
	return q
}

// NotificationListResponse is one page of notifications plus the total
// unread count across all pages.
type NotificationListResponse struct {
	Status      string                `json:"status"`
	Data        []models.Notification `json:"data"`
	UnreadCount int                   `json:"unreadCount"`
	Pagination  models.Pagination     `json:"pagination"`
}

// ListNotifications fetches a page of the current user's notifications.
func (c *Client) ListNotifications(ctx context.Context, params NotificationListParams) (*NotificationListResponse, error) {
	endpoint := "/notifications"
	if q := params.values().Encode(); q != "" {
		endpoint += "?" + q
	}
	var resp NotificationListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, "notifications", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkNotificationRead flips one notification to read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	endpoint := "/notifications/" + url.PathEscape(id) + "/read"
	return c.do(ctx, http.MethodPut, endpoint, "notifications", struct{}{}, nil)
}

// MarkAllNotificationsRead flips every notification of the current user to
// read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", "notifications", struct{}{}, nil)
}
