// Package client is a small multi-endpoint HTTP client for the task API
// (spec.md §4.4), grounded on basti-client/src/client.rs's BastiClient:
// iterate endpoints in order, skip transport failures silently, surface a
// non-success HTTP response immediately without trying the rest.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const callTimeout = 3 * time.Second

// Task is the client-facing view of a task, decoded from the same wire
// shape internal/api's TaskDTO encodes.
type Task struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Duration  int64     `json:"duration"`
	Remaining int64     `json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Priority  uint8     `json:"priority"`
	Assignee  string    `json:"assignee,omitempty"`
}

// Client talks to one of several equivalent API endpoints, failing over
// between them on transport errors only.
type Client struct {
	endpoints []*url.URL
	http      *http.Client
}

// New parses endpoints (base URLs, e.g. "http://10.0.0.1:8080") and
// returns a Client that tries them in the given order on every call.
func New(endpoints []string) (*Client, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("client: at least one endpoint is required")
	}

	parsed := make([]*url.URL, len(endpoints))
	for i, e := range endpoints {
		u, err := url.Parse(e)
		if err != nil {
			return nil, fmt.Errorf("client: invalid endpoint %q: %w", e, err)
		}
		parsed[i] = u
	}

	return &Client{
		endpoints: parsed,
		http: &http.Client{
			Timeout: callTimeout,
		},
	}, nil
}

// requestError is a non-success HTTP response from an endpoint that did
// respond — surfaced immediately, never triggering failover to the next
// endpoint (spec.md §4.4: "the cluster responded").
type requestError struct {
	status int
	body   string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.status, e.body)
}

// execute tries each endpoint in order, building a request via build for
// each base URL. A transport-level failure moves to the next endpoint
// silently; a non-success status is returned as an error immediately.
func (c *Client) execute(ctx context.Context, build func(base *url.URL) (*http.Request, error)) (*http.Response, error) {
	var lastTransportErr error

	for _, base := range c.endpoints {
		req, err := build(base)
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		resp, err := c.http.Do(req)
		if err != nil {
			lastTransportErr = err
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			return nil, &requestError{status: resp.StatusCode, body: string(body)}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("client: all endpoints unreachable: %w", lastTransportErr)
}

func decodeJSON[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		var zero T
		return zero, fmt.Errorf("client: decode response: %w", err)
	}
	return out, nil
}

// Submit creates a new task via POST /api/tasks. durationMillis is the
// requested work duration in milliseconds.
func (c *Client) Submit(ctx context.Context, durationMillis int64, priority uint8) (Task, error) {
	payload, err := json.Marshal(struct {
		Duration int64 `json:"duration"`
		Priority uint8 `json:"priority"`
	}{Duration: durationMillis, Priority: priority})
	if err != nil {
		return Task{}, err
	}

	resp, err := c.execute(ctx, func(base *url.URL) (*http.Request, error) {
		u := *base
		u.Path = "/api/tasks"
		return http.NewRequest(http.MethodPost, u.String(), bytes.NewReader(payload))
	})
	if err != nil {
		return Task{}, err
	}
	return decodeJSON[Task](resp)
}

// List lists tasks via GET /api/tasks, optionally filtered by state
// ("queued" or "running"); an empty state lists every task.
func (c *Client) List(ctx context.Context, state string) ([]Task, error) {
	resp, err := c.execute(ctx, func(base *url.URL) (*http.Request, error) {
		u := *base
		u.Path = "/api/tasks"
		if state != "" {
			q := u.Query()
			q.Set("state", state)
			u.RawQuery = q.Encode()
		}
		return http.NewRequest(http.MethodGet, u.String(), nil)
	})
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]Task](resp)
}

// Show fetches a single task via GET /api/tasks/{id}.
func (c *Client) Show(ctx context.Context, id string) (Task, error) {
	resp, err := c.execute(ctx, func(base *url.URL) (*http.Request, error) {
		u := *base
		u.Path = "/api/tasks/" + id
		return http.NewRequest(http.MethodGet, u.String(), nil)
	})
	if err != nil {
		return Task{}, err
	}
	return decodeJSON[Task](resp)
}

// Cancel removes a task via DELETE /api/tasks/{id}.
func (c *Client) Cancel(ctx context.Context, id string) (Task, error) {
	resp, err := c.execute(ctx, func(base *url.URL) (*http.Request, error) {
		u := *base
		u.Path = "/api/tasks/" + id
		return http.NewRequest(http.MethodDelete, u.String(), nil)
	})
	if err != nil {
		return Task{}, err
	}
	return decodeJSON[Task](resp)
}
