// Package ntfy delivers quotes to a ntfy topic.
package ntfy

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/notify"
)

const defaultPriority = 3

// Message represents a ntfy message.
type Message struct {
	Topic    string   `json:"topic"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority int      `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Click    string   `json:"click,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
}

// Action represents a ntfy action button.
type Action struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	URL    string `json:"url,omitempty"`
}

// Client publishes messages to one ntfy topic.
type Client struct {
	topic string
	http  *resty.Client
}

var _ notify.Notifier = (*Client)(nil)

// NewClient creates a new ntfy client.
func NewClient(cfg *config.NtfyConfig) *Client {
	rc := resty.New().
		SetHostURL(cfg.ServerURL).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json")

	// Token takes precedence over username/password
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	} else if cfg.Username != "" && cfg.Password != "" {
		rc.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &Client{topic: cfg.Topic, http: rc}
}

func (c *Client) Name() string { return "ntfy" }

// SendMessage publishes msg to the configured topic.
func (c *Client) SendMessage(ctx context.Context, msg Message) error {
	msg.Topic = c.topic

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post("/")
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > 256 {
			body = body[:256]
		}
		return fmt.Errorf("ntfy server returned status %d: %s", resp.StatusCode(), body)
	}

	log.Debug("sent ntfy notification", "topic", msg.Topic, "title", msg.Title)
	return nil
}

// Send publishes a quote with a button that opens it in the app.
func (c *Client) Send(ctx context.Context, d notify.Delivery) error {
	return c.SendMessage(ctx, Message{
		Title:    d.Title,
		Message:  d.Message(),
		Priority: defaultPriority,
		Tags:     []string{"speech_balloon", "quotevault"},
		Click:    d.Link(),
		Actions: []Action{
			{Action: "view", Label: "Open QuoteVault", URL: d.Link()},
		},
	})
}
