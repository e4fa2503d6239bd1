package labelstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultAuthScheme = "Token"
	DefaultTimeout    = 30 * time.Second

	maxErrorBody = 512
)

// Client is the HTTP wrapper for the Label Studio REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Label Studio client. Every request carries
// "Authorization: <AuthScheme> <Token>".
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingURL
	}
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = DefaultAuthScheme
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   scheme,
	})

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   http.DefaultTransport,
			},
		},
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

// ListProjects lists projects via GET /api/projects.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	var resp listProjectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", "list projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetProject fetches a single project via GET /api/projects/{id}.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), "get project", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject patches a project via PATCH /api/projects/{id}.
func (c *Client) UpdateProject(ctx context.Context, id int, req UpdateProjectRequest) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/projects/%d", id), "update project", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListTasks lists a project's tasks via GET /api/projects/{id}/tasks.
func (c *Client) ListTasks(ctx context.Context, projectID int) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", projectID), "list tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetAnnotation fetches an annotation via GET /api/annotations/{id}.
func (c *Client) GetAnnotation(ctx context.Context, id int) (*Annotation, error) {
	var a Annotation
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/annotations/%d", id), "get annotation", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAnnotation patches an annotation via PATCH /api/annotations/{id}.
func (c *Client) UpdateAnnotation(ctx context.Context, id int, req UpdateAnnotationRequest) (*Annotation, error) {
	var a Annotation
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/annotations/%d", id), "update annotation", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for rate limiter (%s): %w", op, err)
		}
	}

	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(in); err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		body = buf
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call label studio %s API: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode label studio %s response: %w", op, err)
	}
	return nil
}
