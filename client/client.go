// Package client talks to the Seedance content-generation API.
//
// Requests are validated locally before anything is sent; a request
// that fails validation comes back as validation.Violations and never
// reaches the network. Remote failures are *RequestError (4xx) or
// *UnknownError (everything else).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/seedance-go/generation"
	"github.com/deppfellow/seedance-go/internal/config"
	"github.com/deppfellow/seedance-go/internal/logger"
)

const (
	// DefaultBaseURL is the public Ark endpoint host.
	DefaultBaseURL      = config.DefaultBaseHost
	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 5 * time.Second

	tasksPath   = "/api/v3/contents/generations/tasks"
	maxBodySize = 4 << 20
)

// Options configures a Client.
type Options struct {
	APIKey       string
	BaseURL      string
	HTTPClient   *http.Client
	Timeout      time.Duration
	PollInterval time.Duration
	Logger       *zerolog.Logger
}

// Client performs HTTP calls against the generation task endpoints.
// It is safe for concurrent use.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       zerolog.Logger
}

// New constructs a client, filling unset options with defaults.
func New(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("seedance: invalid base url %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Client{
		apiKey:       apiKey,
		baseURL:      baseURL,
		httpClient:   httpClient,
		pollInterval: pollInterval,
		logger:       log.With().Str("component", "seedance_client").Logger(),
	}, nil
}

// NewFromEnv builds a client from VOLCES_* environment variables (and a
// .env file when present).
func NewFromEnv() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)
	return New(optionsFromConfig(cfg, &log))
}

// optionsFromConfig maps loaded configuration onto client options.
func optionsFromConfig(cfg *config.Config, log *zerolog.Logger) Options {
	return Options{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseHost,
		Timeout:      cfg.Timeout,
		PollInterval: cfg.PollInterval,
		Logger:       log,
	}
}

// CreateTask validates p and submits it. Invalid parameters are
// returned as validation.Violations without any network call.
func (c *Client) CreateTask(ctx context.Context, p generation.Params) (*TaskCreated, error) {
	res := generation.Validate(p)
	if !res.Valid() {
		return nil, res.Violations
	}
	return c.Submit(ctx, res.Request)
}

// Submit sends an already validated request.
func (c *Client) Submit(ctx context.Context, req generation.Request) (*TaskCreated, error) {
	var created TaskCreated
	if err := c.do(ctx, http.MethodPost, tasksPath, req, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, &UnknownError{StatusCode: http.StatusOK, Message: "response is missing the task id"}
	}

	c.loggerFor(ctx).Info().
		Str("task_id", created.ID).
		Str("model", req.Model()).
		Msg("generation task created")

	return &created, nil
}

// GetTask fetches the current state of a task.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	path, err := taskPath(id)
	if err != nil {
		return nil, err
	}

	var payload taskPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" {
		return nil, &UnknownError{StatusCode: http.StatusOK, Message: "response is missing the task id"}
	}
	return payload.task(), nil
}

// CancelTask cancels a queued task.
func (c *Client) CancelTask(ctx context.Context, id string) error {
	path, err := taskPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// WaitForTask polls a task until it reaches a terminal status or ctx is
// done. Failed, expired and cancelled tasks are returned without error;
// check Task.Status.
func (c *Client) WaitForTask(ctx context.Context, id string) (*Task, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		task, err := c.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if task.Status.Terminal() {
			return task, nil
		}

		c.loggerFor(ctx).Debug().
			Str("task_id", id).
			Str("status", string(task.Status)).
			Msg("waiting for generation task")

		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-ticker.C:
		}
	}
}

func taskPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("seedance: task id is required")
	}
	return tasksPath + "/" + url.PathEscape(id), nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "seedance: encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "seedance: build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.loggerFor(ctx).With().
		Str("method", method).
		Str("path", path).
		Str("client_request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("generation api call failed")
		return &UnknownError{Message: "transport failure", Err: errors.Wrapf(err, "%s %s", method, path)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &UnknownError{StatusCode: resp.StatusCode, Message: "read response body", Err: errors.WithStack(err)}
	}

	event := log.Debug()
	if resp.StatusCode >= http.StatusBadRequest {
		event = log.Warn()
	}
	event.Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("generation api call")

	err = mapResponse(resp.StatusCode, resp.Header, raw, out)

	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.RequestID == "" {
		reqErr.RequestID = requestID
	}
	return err
}

// loggerFor prefers a request-scoped logger carried by ctx.
func (c *Client) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.logger
}
