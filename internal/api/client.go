// Package api implements the typed HTTP client for the Nebula backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/common/metrics"
)

// Client is the base HTTP client shared by all resource methods. It always
// sends JSON headers (except for multipart uploads), carries session
// cookies across requests, translates non-2xx responses into structured
// errors and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a Client against baseURL. timeout guards every request;
// callers that need shorter deadlines pass a context.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// errorBody is the error envelope the backend returns on failure.
type errorBody struct {
	Message string `json:"message"`
}

// do executes a JSON request and decodes the response into out (when out is
// non-nil). resource labels the metrics series.
func (c *Client) do(ctx context.Context, method, endpoint, resource string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewValidationFailed(fmt.Sprintf("encode request body: %v", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return apperrors.NewValidationFailed(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(req, resource, out)
}

// upload executes a multipart POST with the file under fieldName plus any
// metadata fields. Content-Type is left to the multipart writer so the
// boundary is set correctly.
func (c *Client) upload(ctx context.Context, endpoint, resource, fieldName, filename string, content io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return apperrors.NewValidationFailed(fmt.Sprintf("build form file: %v", err))
	}
	if _, err := io.Copy(part, content); err != nil {
		return apperrors.NewValidationFailed(fmt.Sprintf("read upload content: %v", err))
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := writer.WriteField(k, v); err != nil {
			return apperrors.NewValidationFailed(fmt.Sprintf("write form field %s: %v", k, err))
		}
	}
	if err := writer.Close(); err != nil {
		return apperrors.NewValidationFailed(fmt.Sprintf("finalize form: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return apperrors.NewValidationFailed(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, resource, out)
}

func (c *Client) send(req *http.Request, resource string, out interface{}) error {
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(resource, req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(resource, req.Method, "network_error").Inc()
		c.logger.WithError(err).Error("request failed", map[string]interface{}{
			"method":   req.Method,
			"endpoint": req.URL.Path,
		})
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(resource, req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &eb)
		c.logger.Warn("api error", map[string]interface{}{
			"method":   req.Method,
			"endpoint": req.URL.Path,
			"status":   resp.StatusCode,
			"message":  eb.Message,
		})
		return apperrors.NewAPIError(resp.StatusCode, eb.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewNetworkError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
