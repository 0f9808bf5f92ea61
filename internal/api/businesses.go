package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"nebula/internal/models"
)

// BusinessListParams filters and paginates the directory listing. Zero
// values are omitted from the query string entirely.
type BusinessListParams struct {
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
	Query         string
	Industry      string
	Country       string
	City          string
	Size          string
	MinTrustScore int
}

func (p BusinessListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.Industry != "" {
		q.Set("industry", p.Industry)
	}
	if p.Country != "" {
		q.Set("country", p.Country)
	}
	if p.City != "" {
		q.Set("city", p.City)
	}
	if p.Size != "" {
		q.Set("size", p.Size)
	}
	if p.MinTrustScore > 0 {
		q.Set("minTrustScore", strconv.Itoa(p.MinTrustScore))
	}
	return q
}

// BusinessListResponse is one page of the directory.
type BusinessListResponse struct {
	Status     string            `json:"status"`
	Data       []models.Business `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// BusinessResponse wraps a single business.
type BusinessResponse struct {
	Status string          `json:"status"`
	Data   models.Business `json:"data"`
}

// LogoResponse carries the URL of a freshly uploaded logo.
type LogoResponse struct {
	Status string `json:"status"`
	Data   struct {
		Logo string `json:"logo"`
	} `json:"data"`
}

// ListBusinesses fetches a page of the business directory.
func (c *Client) ListBusinesses(ctx context.Context, params BusinessListParams) (*BusinessListResponse, error) {
	endpoint := "/businesses"
	if q := params.values().Encode(); q != "" {
		endpoint += "?" + q
	}
	var resp BusinessListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, "businesses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBusiness fetches a single business by id.
func (c *Client) GetBusiness(ctx context.Context, id string) (*BusinessResponse, error) {
	var resp BusinessResponse
	if err := c.do(ctx, http.MethodGet, "/businesses/"+url.PathEscape(id), "businesses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentBusiness fetches the authenticated user's own business.
func (c *Client) GetCurrentBusiness(ctx context.Context) (*BusinessResponse, error) {
	var resp BusinessResponse
	if err := c.do(ctx, http.MethodGet, "/businesses/me", "businesses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBusiness registers a new business profile.
func (c *Client) CreateBusiness(ctx context.Context, update models.BusinessUpdate) (*BusinessResponse, error) {
	var resp BusinessResponse
	if err := c.do(ctx, http.MethodPost, "/businesses", "businesses", update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateBusiness applies a partial update. Fields left unset in update are
// untouched server-side.
func (c *Client) UpdateBusiness(ctx context.Context, id string, update models.BusinessUpdate) (*BusinessResponse, error) {
	var resp BusinessResponse
	if err := c.do(ctx, http.MethodPut, "/businesses/"+url.PathEscape(id), "businesses", update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteBusiness removes a business profile.
func (c *Client) DeleteBusiness(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/businesses/"+url.PathEscape(id), "businesses", nil, nil)
}

// UploadLogo uploads a logo image under the multipart field "logo" and
// returns the served URL.
func (c *Client) UploadLogo(ctx context.Context, id, filename string, content io.Reader) (string, error) {
	var resp LogoResponse
	err := c.upload(ctx, "/businesses/"+url.PathEscape(id)+"/logo", "businesses", "logo", filename, content, nil, &resp)
	if err != nil {
		return "", err
	}
	return resp.Data.Logo, nil
}

// AddService appends a service to a business.
func (c *Client) AddService(ctx context.Context, id, service string) (*BusinessResponse, error) {
	var resp BusinessResponse
	body := map[string]string{"service": service}
	if err := c.do(ctx, http.MethodPost, "/businesses/"+url.PathEscape(id)+"/services", "businesses", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveService removes a service by value.
func (c *Client) RemoveService(ctx context.Context, id, service string) (*BusinessResponse, error) {
	var resp BusinessResponse
	endpoint := "/businesses/" + url.PathEscape(id) + "/services/" + url.PathEscape(service)
	if err := c.do(ctx, http.MethodDelete, endpoint, "businesses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddCertification appends a certification to a business.
func (c *Client) AddCertification(ctx context.Context, id, certification string) (*BusinessResponse, error) {
	var resp BusinessResponse
	body := map[string]string{"certification": certification}
	if err := c.do(ctx, http.MethodPost, "/businesses/"+url.PathEscape(id)+"/certifications", "businesses", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveCertification removes a certification by value.
func (c *Client) RemoveCertification(ctx context.Context, id, certification string) (*BusinessResponse, error) {
	var resp BusinessResponse
	endpoint := "/businesses/" + url.PathEscape(id) + "/certifications/" + url.PathEscape(certification)
	if err := c.do(ctx, http.MethodDelete, endpoint, "businesses", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
