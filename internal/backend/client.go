package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"teamcal/internal/feed"
)

const sessionCookieName = "access_token"

type Config struct {
	BaseURL       string
	SessionCookie string
	Timeout       time.Duration
}

// Client is a typed client for the business-suite backend. A 401 from any
// endpoint fires the session termination hook exactly once for the client's
// lifetime; every caller still receives ErrSessionExpired.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string

	onSessionExpired func()
	expireOnce       sync.Once
}

// New creates a client. onSessionExpired may be nil.
func New(config Config, onSessionExpired func()) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:       &http.Client{Timeout: timeout},
		baseURL:          config.BaseURL,
		cookie:           config.SessionCookie,
		onSessionExpired: onSessionExpired,
	}
}

// Me fetches the identity of the authenticated session.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	var identity Identity
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &identity)
	return identity, err
}

// Employees lists the assignable accounts of the owner's company.
// The backend rejects the call for non-owners.
func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := c.do(ctx, http.MethodGet, "/api/my-employees", nil, &employees)
	return employees, err
}

// Feed fetches the combined events+tasks payload for the session.
func (c *Client) Feed(ctx context.Context) (feed.Feed, error) {
	var f feed.Feed
	err := c.do(ctx, http.MethodGet, "/calendar/feed", nil, &f)
	return f, err
}

// CreateEvent submits an event draft and returns the created event.
func (c *Client) CreateEvent(ctx context.Context, draft EventDraft) (feed.Event, error) {
	var event feed.Event
	err := c.do(ctx, http.MethodPost, "/calendar/general/events", draft, &event)
	return event, err
}

// CreateTask submits a task draft and returns the created task.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (feed.Task, error) {
	var task feed.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &task)
	return task, err
}

// DeleteEvent removes an event by ID.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

// Logout ends the backend session. The local session terminates regardless
// of the outcome, so the request error is only logged.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	if err != nil {
		log.WithError(err).Warn("logout request failed")
	}
	c.terminateSession()
	return nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to prepare request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.cookie})
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.WithField("method", method).WithField("path", path).
		WithField("status", resp.StatusCode).
		WithField("latency", time.Since(start)).
		Debug("backend request processed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.terminateSession()
		return ErrSessionExpired
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return &ValidationError{Detail: readDetail(resp.Body, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) terminateSession() {
	c.expireOnce.Do(func() {
		log.Warn("backend session terminated")
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
	})
}

// readDetail extracts the backend's error detail message.
func readDetail(body io.Reader, statusCode int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return http.StatusText(statusCode)
}
