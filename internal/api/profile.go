package api

import (
	"context"
	"net/http"

	"nebula/internal/models"
)

// ProfileResponse wraps the authenticated user's profile.
type ProfileResponse struct {
	Status string      `json:"status"`
	Data   models.User `json:"data"`
}

// ProfileUpdate is a partial update of the user profile.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Picture  *string `json:"picture,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/profile", "profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login opens a mock session. The session cookie lands in the client's
// jar and rides along on every subsequent request.
func (c *Client) Login(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "auth", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the mock session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", "auth", struct{}{}, nil)
}

// GetSession resolves the user behind the active mock session. Returns a
// 401 API error when no session cookie is present.
func (c *Client) GetSession(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", "auth", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile applies a partial update to the user profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodPut, "/auth/profile", "profile", update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
