// Package api is a thin JSON client for the offboarding HTTP API. The
// polling clients in client/approval and client/status sit on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/user"
)

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Submit files a resignation request for the authenticated identity.
func (c *Client) Submit(ctx context.Context, req resignation.SubmitRequest) (resignation.Request, error) {
	var created resignation.Request
	err := c.do(ctx, http.MethodPost, "/api/v1/resignations", req, &created)
	return created, err
}

// ActiveStatus returns the authenticated identity's pending request view.
func (c *Client) ActiveStatus(ctx context.Context) (resignation.ActiveStatus, error) {
	var status resignation.ActiveStatus
	err := c.do(ctx, http.MethodGet, "/api/v1/resignations/my/active", nil, &status)
	return status, err
}

// History returns all of the authenticated identity's requests, newest first.
func (c *Client) History(ctx context.Context) ([]resignation.Request, error) {
	var requests []resignation.Request
	err := c.do(ctx, http.MethodGet, "/api/v1/resignations/my", nil, &requests)
	return requests, err
}

// Pending lists requests whose given stage is still undecided, oldest first.
func (c *Client) Pending(ctx context.Context, stage resignation.Stage) ([]resignation.Request, error) {
	path := "/api/v1/resignations/pending?stage=" + url.QueryEscape(string(stage))

	var requests []resignation.Request
	err := c.do(ctx, http.MethodGet, path, nil, &requests)
	return requests, err
}

// Decide records a stage decision on a request.
func (c *Client) Decide(ctx context.Context, req resignation.DecideRequest) (resignation.Request, error) {
	path := fmt.Sprintf("/api/v1/resignations/%s/decide/%s", url.PathEscape(req.RequestID), req.Stage)

	var updated resignation.Request
	err := c.do(ctx, http.MethodPost, path, req, &updated)
	return updated, err
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (%s %s, status %d): %w", method, path, resp.StatusCode, err)
	}

	if !env.Success {
		return sentinelFor(resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// sentinelFor maps API error codes back to the domain sentinels so callers
// can branch with errors.Is the same way server-side code does.
func sentinelFor(status int, apiErr *apiError) error {
	if apiErr == nil {
		return fmt.Errorf("request failed with status %d", status)
	}

	switch apiErr.Code {
	case "DUPLICATE_ACTIVE_REQUEST":
		return resignation.ErrDuplicateActiveRequest
	case "STAGE_ALREADY_DECIDED":
		return resignation.ErrStageAlreadyDecided
	case "NOT_FOUND":
		return resignation.ErrRequestNotFound
	case "FORBIDDEN":
		return user.ErrStageNotAllowedForActor
	case "VALIDATION_ERROR":
		return &ValidationError{Message: apiErr.Message, Details: apiErr.Details}
	}
	return fmt.Errorf("%s: %s (status %d)", apiErr.Code, apiErr.Message, status)
}

// ValidationError carries the server's field-level validation details.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Details))
	for field, msg := range e.Details {
		parts = append(parts, field+": "+msg)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}
