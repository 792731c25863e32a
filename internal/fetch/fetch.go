// Package fetch retrieves the static JSON files that make up the published
// catalog: per-song files, albums, and per-tag index files. Any non-200
// response is reported as absence, not failure; the caller decides whether a
// missing entity matters.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
)

// Client fetches JSON documents relative to a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a fetch client. A nil httpClient gets the default timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the configured content host base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// JSON fetches one document into v. A non-200 status returns a
// NotFoundError; transport failures return a RemoteError.
func (c *Client) JSON(ctx context.Context, path string, v any) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WrapResource("create", "request", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &errors.RemoteError{Operation: "get", Path: path, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return errors.NewNotFoundError("file", path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}
