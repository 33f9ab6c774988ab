// Package remote is a client for the hosted backend: a PostgREST style table API,
// a GoTrue style auth service and an object storage for avatars.
package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/jon4hz/quotevault/internal/stream"
)

var _ Store = (*Client)(nil) // Ensure Client implements Store

const (
	restPath    = "/rest/v1/"
	authPath    = "/auth/v1"
	storagePath = "/storage/v1/object"

	// refreshLeeway is how long before expiry an access token is refreshed.
	refreshLeeway = 30 * time.Second
)

// Config holds the connection settings of the backend.
type Config struct {
	// URL is the base URL of the backend project.
	URL string
	// AnonKey is the public API key sent with every request.
	AnonKey string
	// AvatarBucket is the storage bucket avatars are uploaded to.
	AvatarBucket string
	// Timeout applies to every request.
	Timeout time.Duration
}

// APIError is returned when the backend answers with a non 2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend request failed with status %d: %s", e.StatusCode, e.Message)
}

// errorBody covers the error shapes of the table, auth and storage APIs.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (b *errorBody) text() string {
	for _, s := range []string{b.Message, b.Msg, b.ErrorDescription, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Client talks to the backend. It keeps the current session in memory and in the SessionStore.
type Client struct {
	cfg      *Config
	http     *resty.Client
	sessions SessionStore

	mu      sync.RWMutex
	session *Session
	status  *stream.Broker
}

// New creates a backend client. sessions may be nil, the session is then kept in memory only.
func New(cfg *Config, sessions SessionStore) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetHostURL(strings.TrimSuffix(cfg.URL, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Accept", "application/json")

	return &Client{
		cfg:      cfg,
		http:     rc,
		sessions: sessions,
		status:   stream.NewBroker(),
	}
}

// request builds a request carrying the session token, or the anon key when signed out.
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&errorBody{}), nil
}

func (c *Client) anonRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.AnonKey).
		SetError(&errorBody{})
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	msg := ""
	if body, ok := resp.Error().(*errorBody); ok {
		msg = body.text()
	}
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

func (c *Client) logger() *log.Logger {
	return log.Default().WithPrefix("remote")
}
