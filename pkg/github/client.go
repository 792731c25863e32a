// Package github provides a thin client for the GitHub contents API, the
// remote file store backing the song catalog. Every operation is a single
// HTTP round trip: get, put, and delete of one file by path, with the
// returned content digest ("sha") used for optimistic-concurrency writes.
//
// There is no batching primitive at this layer. Multi-file consistency is
// the caller's concern (see the publish package).
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/egodevrjm/songstore/pkg/constants"
	"github.com/egodevrjm/songstore/pkg/errors"
)

// DefaultAPIBase is the GitHub REST API base URL.
const DefaultAPIBase = "https://api.github.com"

// Config holds the settings needed to reach one repository.
type Config struct {
	Token  string // bearer credential, required
	Owner  string // repository owner, required
	Repo   string // repository name, required
	Branch string // defaults to constants.DefaultBranch

	// APIBase overrides the GitHub API endpoint, used in tests.
	APIBase string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Client talks to the contents API of a single repository and branch.
type Client struct {
	token   string
	owner   string
	repo    string
	branch  string
	apiBase string
	http    *http.Client
}

// New creates a contents client. Token, owner, and repo are required.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, &errors.AuthenticationError{Method: "token", Message: "access token is required"}
	}
	if cfg.Owner == "" {
		return nil, errors.NewValidationError("owner", cfg.Owner, "repository owner is required")
	}
	if cfg.Repo == "" {
		return nil, errors.NewValidationError("repo", cfg.Repo, "repository name is required")
	}

	branch := cfg.Branch
	if branch == "" {
		branch = constants.DefaultBranch
	}
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &Client{
		token:   cfg.Token,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		branch:  branch,
		apiBase: apiBase,
		http:    httpClient,
	}, nil
}

// Branch returns the branch this client reads and writes.
func (c *Client) Branch() string {
	return c.branch
}

// File is one remote file's decoded content and digest.
type File struct {
	Path    string
	SHA     string
	Content []byte
}

// WriteResult reports the outcome of a successful put.
type WriteResult struct {
	SHA         string // digest of the written content
	DownloadURL string // raw content locator
	HTMLURL     string // browser locator
}

// contentsResponse is the wire shape of a contents GET.
type contentsResponse struct {
	SHA         string `json:"sha"`
	Content     string `json:"content"` // base64, possibly newline-wrapped
	Encoding    string `json:"encoding"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// writeResponse is the wire shape of a contents PUT.
type writeResponse struct {
	Content struct {
		SHA         string `json:"sha"`
		DownloadURL string `json:"download_url"`
		HTMLURL     string `json:"html_url"`
	} `json:"content"`
}

// apiError is the wire shape of a non-2xx response body.
type apiError struct {
	Message string `json:"message"`
}

// Get fetches one file at the client's branch. A missing path returns a
// NotFoundError; callers that treat absence as an empty default should check
// errors.IsNotFound.
func (c *Client) Get(ctx context.Context, path string) (*File, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiBase, c.owner, c.repo, escapePath(path), url.QueryEscape(c.branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", path, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.RemoteError{Operation: "get", Path: path, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewNotFoundError("file", path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.remoteFailure("get", path, resp)
	}

	var body contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	content, err := decodeContent(body.Content)
	if err != nil {
		return nil, errors.WrapParse("base64", path, err)
	}

	return &File{Path: path, SHA: body.SHA, Content: content}, nil
}

// PutOption configures a single put operation.
type PutOption func(*putOptions)

type putOptions struct {
	sha   *string
	noped bool // sha discovery disabled
}

// WithSHA supplies the expected previous content digest. The write fails
// with ErrRemoteConflict if the remote digest no longer matches.
func WithSHA(sha string) PutOption {
	return func(o *putOptions) {
		o.sha = &sha
	}
}

// WithoutSHADiscovery skips the pre-read used to discover the current digest.
// The write will fail if the path already exists.
func WithoutSHADiscovery() PutOption {
	return func(o *putOptions) {
		o.noped = true
	}
}

// Put writes one file, creating or replacing it. When no digest is supplied
// the client first reads the path to discover the current digest, so callers
// do not need to know whether they are creating or replacing. A stale digest
// fails with ErrRemoteConflict and leaves the remote file unchanged.
func (c *Client) Put(ctx context.Context, path string, content []byte, message string, opts ...PutOption) (*WriteResult, error) {
	var options putOptions
	for _, opt := range opts {
		opt(&options)
	}

	sha := ""
	switch {
	case options.sha != nil:
		sha = *options.sha
	case !options.noped:
		// Discover the current digest; absence means this is a create.
		existing, err := c.Get(ctx, path)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			sha = existing.SHA
		}
	}

	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  c.branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	resp, err := c.send(ctx, http.MethodPut, path, payload)
	if err != nil {
		return nil, &errors.RemoteError{Operation: "put", Path: path, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity {
		msg := readAPIMessage(resp.Body)
		return nil, &errors.ConflictError{Path: path, SHA: sha, Message: msg}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.remoteFailure("put", path, resp)
	}

	var body writeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	return &WriteResult{
		SHA:         body.Content.SHA,
		DownloadURL: body.Content.DownloadURL,
		HTMLURL:     body.Content.HTMLURL,
	}, nil
}

// Delete removes one file. The digest is mandatory; a stale digest or absent
// path fails with ErrNotFound.
func (c *Client) Delete(ctx context.Context, path, message, sha string) error {
	payload := map[string]any{
		"message": message,
		"sha":     sha,
		"branch":  c.branch,
	}

	resp, err := c.send(ctx, http.MethodDelete, path, payload)
	if err != nil {
		return &errors.RemoteError{Operation: "delete", Path: path, Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusConflict,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return errors.NewNotFoundError("file", path)
	default:
		return c.remoteFailure("delete", path, resp)
	}
}

// send issues a JSON-bodied request against the contents endpoint.
func (c *Client) send(ctx context.Context, method, path string, payload map[string]any) (*http.Response, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiBase, c.owner, c.repo, escapePath(path))

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// setHeaders applies authentication and protocol headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

// remoteFailure builds a RemoteError carrying the upstream message text.
func (c *Client) remoteFailure(operation, path string, resp *http.Response) error {
	return &errors.RemoteError{
		Operation:  operation,
		Path:       path,
		StatusCode: resp.StatusCode,
		Message:    readAPIMessage(resp.Body),
	}
}

// readAPIMessage extracts the human-readable message from an error body.
func readAPIMessage(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	var body apiError
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}

// decodeContent decodes the base64 content field, which GitHub wraps with
// newlines.
func decodeContent(content string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, content)
	return base64.StdEncoding.DecodeString(cleaned)
}

// escapePath escapes a repository-relative path for use in a URL, keeping
// the slashes that separate its segments.
func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
