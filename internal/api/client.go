// Package api is the HTTP client for the grading service's score endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/gradewise/internal/weights"
)

const defaultTimeout = 15 * time.Second

// Client talks to the grading service on behalf of one signed-in user.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer credential sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client = &http.Client{Timeout: d}
		}
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredential reports whether a bearer token is configured.
func (c *Client) HasCredential() bool {
	return c.token != ""
}

// Scores fetches the weight tree and passing threshold of a subject.
func (c *Client) Scores(ctx context.Context, subjectID string) (*ScoresResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, subjectPath(subjectID, "scores"), nil)
	if err != nil {
		return nil, err
	}
	if err := validateScores(raw); err != nil {
		return nil, err
	}

	var resp ScoresResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &InvalidResponseError{Body: raw, Err: err}
	}
	if resp.ScoreStructure.Units == nil {
		resp.ScoreStructure.Units = []weights.Unit{}
	}
	return &resp, nil
}

// SaveHierarchical submits every weight of t in a single request.
func (c *Client) SaveHierarchical(ctx context.Context, subjectID string, t weights.Tree) error {
	_, err := c.do(ctx, http.MethodPut, subjectPath(subjectID, "scores-hierarchical"), NewHierarchicalUpdate(t))
	return err
}

// AutoDistribute asks the service to spread weights evenly.
func (c *Client) AutoDistribute(ctx context.Context, subjectID string) error {
	body := AutoDistributeRequest{ResetBeforeDistribute: true, SubjectID: weights.ID(subjectID)}
	_, err := c.do(ctx, http.MethodPost, subjectPath(subjectID, "auto-distribute"), body)
	return err
}

// UpdatePassingCriteria sets the passing threshold of a subject.
func (c *Client) UpdatePassingCriteria(ctx context.Context, subjectID string, pct float64) error {
	body := PassingCriteriaRequest{PassingPercentage: pct}
	_, err := c.do(ctx, http.MethodPut, subjectPath(subjectID, "passing-criteria"), body)
	return err
}

func subjectPath(subjectID, action string) string {
	return "/subjects/" + url.PathEscape(subjectID) + "/" + action
}

// do performs one authenticated request and returns the raw 2xx body.
// A success=false envelope on a 2xx response is reported as *ValidationError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if !c.HasCredential() {
		return nil, ErrNoCredential
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		var env Envelope
		if err := json.Unmarshal(raw, &env); err == nil && !env.Success && (env.Message != "" || env.Error != "") {
			return nil, &ValidationError{Message: envelopeMessage(raw)}
		}
	}
	return raw, nil
}
