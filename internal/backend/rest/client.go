// Package rest implements the service.Service interface over the task HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultTimeout

	tasksPath  = "/tasks/"
	healthPath = "/health"

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-ID"
)

// Client implements service.Service against the task REST API.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	log     *logrus.Entry
}

// New creates a client from configuration.
// A configured API token is attached as a bearer token on every request.
func New(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*Client, error) {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api_url: %q", cfg.APIURL)
	}

	httpClient := &http.Client{}
	if cfg.APIToken != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIToken,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(ctx, tokenSource)
	}

	c := NewWithHTTPClient(cfg.APIURL, httpClient, log)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *logrus.Entry) *Client {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		timeout: APITimeout,
		log:     log.WithField("component", "rest"),
	}
}

// ListTasks fetches the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, tasksPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err)
	}
	return decodeTaskList(data)
}

// decodeTaskList accepts only a JSON array of task objects.
func decodeTaskList(data []byte) ([]service.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of tasks", service.ErrMalformedResponse)
	}
	var tasks []service.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
	}
	return tasks, nil
}

// CreateTask posts a new task. The server must answer 201 Created.
func (c *Client) CreateTask(ctx context.Context, task service.Task) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	task.ID = ""
	resp, err := c.do(ctx, http.MethodPost, tasksPath, task)
	if err != nil {
		return service.Task{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return service.Task{}, fmt.Errorf("%w: unexpected status %d", service.ErrSync, resp.StatusCode)
	}

	var created service.Task
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return service.Task{}, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
	}
	if created.ID == "" {
		return service.Task{}, fmt.Errorf("%w: created task has no id", service.ErrMalformedResponse)
	}
	return created, nil
}

// PatchTask sends a partial update.
func (c *Client) PatchTask(ctx context.Context, id service.ID, fields service.Fields) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPatch, taskPath(id), fields)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id service.ID) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Health calls the server health endpoint.
func (c *Client) Health(ctx context.Context) (service.Health, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return service.Health{}, err
	}
	defer resp.Body.Close()

	var h service.Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return service.Health{}, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
	}
	return h, nil
}

func taskPath(id service.ID) string {
	return tasksPath + url.PathEscape(string(id)) + "/"
}

// do sends one JSON request. Non-2xx responses are returned as errors
// with the body already consumed.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, wrapError(err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrSync, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrSync, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": reqID,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, wrapError(err)
	}
	log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("request completed")

	if err := googleapi.CheckResponse(resp); err != nil {
		resp.Body.Close()
		return nil, wrapError(err)
	}
	return resp, nil
}

// wrapError classifies transport and HTTP errors as service.ErrSync
// with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, service.ErrSync) || errors.Is(err, service.ErrMalformedResponse) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", service.ErrSync)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: cancelled", service.ErrSync)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: unauthorized (check api_token)", service.ErrSync)
		case http.StatusNotFound:
			return fmt.Errorf("%w: not found", service.ErrSync)
		}
		return fmt.Errorf("%w: server returned %d %s", service.ErrSync, apiErr.Code, http.StatusText(apiErr.Code))
	}

	return fmt.Errorf("%w: %v", service.ErrSync, err)
}
