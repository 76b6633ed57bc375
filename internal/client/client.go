package client

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
)

const (
	DefaultBaseURL = "http://localhost:5001/api"
	DefaultTimeout = 15 * time.Second
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after DefaultTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Token() string { return c.token }

func (c *Client) SetToken(token string) { c.token = token }

// do sends in as JSON to path and decodes a 2xx body into out.
// Authenticated calls fail fast with AUTH_REQUIRED when no token is set.
func (c *Client) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	if authenticated && c.token == "" {
		return errAuthRequired()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &APIError{Message: "could not encode request", Code: CodeUnknown, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Message: err.Error(), Code: CodeUnknown, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := classifyTransportError(err)
		slog.Debug("request failed", slog.String("path", path), slog.String("code", apiErr.Code))
		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return fromResponse(resp.StatusCode, eb)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return classifyTransportError(err)
		}
		return &APIError{
			Message: fmt.Sprintf("could not decode response: %v", err),
			Code:    CodeUnknown,
			Status:  resp.StatusCode,
			Err:     err,
		}
	}
	return nil
}

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", false, in, &res); err != nil {
		return AuthResult{}, err
	}
	c.token = res.Token
	return res, nil
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	in := map[string]string{"username": username, "password": password}
	var res AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, in, &res); err != nil {
		return AuthResult{}, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	notes := []Note{}
	if err := c.do(ctx, http.MethodGet, "/notes", true, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodGet, "/notes/"+id, true, nil, &n)
	return n, err
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/notes", true, in, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPut, "/notes/"+id, true, in, &n)
	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, true, nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodPut, "/user/profile", true, in, &p)
	return p, err
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/healthz", false, nil, &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return &APIError{Message: "unexpected health status " + body.Status, Code: CodeUnknown, Status: http.StatusOK}
	}
	return nil
}
