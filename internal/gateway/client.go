package gateway

// Package gateway is the HTTP client for the library REST API. It owns
// request plumbing and response classification; callers see only domain
// types and apperrors kinds, never raw HTTP shapes.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/biblio-admin/internal/apperrors"
)

const (
	defaultTimeout = 30 * time.Second
	// maxErrorBody caps how much of an error response we read for a message.
	maxErrorBody = 64 << 10
)

// Options groups dependencies for the API client.
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string
	// HTTPClient overrides the default client (30s timeout) when set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls the library REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient constructs an API client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("gateway: base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}, nil
}

// apiError is the server's JSON error envelope. Field is present on
// field-level validation failures.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Field   string `json:"field"`
}

// do performs one API call. A non-empty token is sent as a bearer
// credential. When out is non-nil the 2xx response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeRequestFailed, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.classify(method, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeRequestFailed, "decode %s %s response", method, path)
		}
	}
	return nil
}

// classify maps a non-2xx response to an error kind. Conflicts and missing
// resources get their own kinds so callers can branch on them; everything
// else is a request failure carrying the server message when one exists.
func (c *Client) classify(method, path string, resp *http.Response) error {
	var envelope apiError
	if data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
		// Ignore parse failures; not every error body is JSON.
		_ = json.Unmarshal(data, &envelope)
	}

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	if message == "" {
		message = fmt.Sprintf("api request failed with status %d", resp.StatusCode)
	}

	c.logger.Warn("api request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	switch resp.StatusCode {
	case http.StatusConflict:
		return apperrors.Conflict(message)
	case http.StatusNotFound:
		return apperrors.NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if envelope.Field != "" {
			return apperrors.ValidationField(envelope.Field, message)
		}
		return apperrors.Validation(message)
	default:
		return apperrors.RequestFailed(message)
	}
}

// fetchList retrieves a list endpoint, accepting both a bare JSON array and
// the server's pagination envelope.
func fetchList[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return unwrapList[T](raw)
}

func unwrapList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Content []T `json:"content"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeRequestFailed, "decode paginated response")
		}
		return page.Content, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRequestFailed, "decode list response")
	}
	return items, nil
}
