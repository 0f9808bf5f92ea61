package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	apperrors "nebula/internal/common/errors"
	"nebula/internal/models"
)

// ConnectionListParams paginates and filters connection listings.
type ConnectionListParams struct {
	Page   int
	Limit  int
	Status string
}

func (p ConnectionListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// ConnectionListResponse is one page of connections or requests.
type ConnectionListResponse struct {
	Status     string              `json:"status"`
	Data       []models.Connection `json:"data"`
	Pagination models.Pagination   `json:"pagination"`
}

// ConnectionResponse wraps a single connection.
type ConnectionResponse struct {
	Status string            `json:"status"`
	Data   models.Connection `json:"data"`
}

// SendConnectionInput is the payload for a new connection request.
type SendConnectionInput struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
}

func (in SendConnectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.RecipientID, validation.Required),
		validation.Field(&in.Message, validation.Length(0, 1000)),
	)
}

// ListConnections fetches the current user's accepted connections.
func (c *Client) ListConnections(ctx context.Context, params ConnectionListParams) (*ConnectionListResponse, error) {
	endpoint := "/connections"
	if q := params.values().Encode(); q != "" {
		endpoint += "?" + q
	}
	var resp ConnectionListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, "connections", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListConnectionRequests fetches pending requests addressed to the current
// user.
func (c *Client) ListConnectionRequests(ctx context.Context, params ConnectionListParams) (*ConnectionListResponse, error) {
	endpoint := "/connections/requests"
	if q := params.values().Encode(); q != "" {
		endpoint += "?" + q
	}
	var resp ConnectionListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, "connections", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendConnectionRequest creates a PENDING connection to another business.
func (c *Client) SendConnectionRequest(ctx context.Context, in SendConnectionInput) (*ConnectionResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, apperrors.NewValidationFailed(err.Error())
	}
	var resp ConnectionResponse
	if err := c.do(ctx, http.MethodPost, "/connections", "connections", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AcceptConnectionRequest transitions a PENDING connection to ACCEPTED.
func (c *Client) AcceptConnectionRequest(ctx context.Context, id string) (*ConnectionResponse, error) {
	var resp ConnectionResponse
	endpoint := "/connections/" + url.PathEscape(id) + "/accept"
	if err := c.do(ctx, http.MethodPut, endpoint, "connections", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RejectConnectionRequest transitions a PENDING connection to REJECTED.
func (c *Client) RejectConnectionRequest(ctx context.Context, id string) (*ConnectionResponse, error) {
	var resp ConnectionResponse
	endpoint := "/connections/" + url.PathEscape(id) + "/reject"
	if err := c.do(ctx, http.MethodPut, endpoint, "connections", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveConnection deletes a connection entirely.
func (c *Client) RemoveConnection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/connections/"+url.PathEscape(id), "connections", nil, nil)
}
