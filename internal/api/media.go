package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"nebula/internal/models"
)

// MediaListResponse lists the media items of a business.
type MediaListResponse struct {
	Status string             `json:"status"`
	Data   []models.MediaItem `json:"data"`
}

// MediaResponse wraps a single media item.
type MediaResponse struct {
	Status string           `json:"status"`
	Data   models.MediaItem `json:"data"`
}

// DocumentListResponse lists the documents of a business.
type DocumentListResponse struct {
	Status string                `json:"status"`
	Data   []models.DocumentItem `json:"data"`
}

// DocumentResponse wraps a single document.
type DocumentResponse struct {
	Status string              `json:"status"`
	Data   models.DocumentItem `json:"data"`
}

// ListMedia fetches all media items owned by a business.
func (c *Client) ListMedia(ctx context.Context, businessID string) (*MediaListResponse, error) {
	var resp MediaListResponse
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/media"
	if err := c.do(ctx, http.MethodGet, endpoint, "media", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListDocuments fetches all documents owned by a business.
func (c *Client) ListDocuments(ctx context.Context, businessID string) (*DocumentListResponse, error) {
	var resp DocumentListResponse
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/documents"
	if err := c.do(ctx, http.MethodGet, endpoint, "media", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadMedia uploads a media file under the multipart field "file" with
// optional title/description metadata.
func (c *Client) UploadMedia(ctx context.Context, businessID, filename string, content io.Reader, meta models.UploadMetadata) (*MediaResponse, error) {
	var resp MediaResponse
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/media"
	fields := map[string]string{"title": meta.Title, "description": meta.Description}
	if err := c.upload(ctx, endpoint, "media", "file", filename, content, fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadDocument uploads a document under the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, businessID, filename string, content io.Reader, meta models.UploadMetadata) (*DocumentResponse, error) {
	var resp DocumentResponse
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/documents"
	fields := map[string]string{"title": meta.Title, "description": meta.Description}
	if err := c.upload(ctx, endpoint, "media", "file", filename, content, fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMedia removes a media item.
func (c *Client) DeleteMedia(ctx context.Context, businessID, mediaID string) error {
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/media/" + url.PathEscape(mediaID)
	return c.do(ctx, http.MethodDelete, endpoint, "media", nil, nil)
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, businessID, documentID string) error {
	endpoint := "/businesses/" + url.PathEscape(businessID) + "/documents/" + url.PathEscape(documentID)
	return c.do(ctx, http.MethodDelete, endpoint, "media", nil, nil)
}
