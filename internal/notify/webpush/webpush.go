// Package webpush delivers quotes as browser push notifications.
package webpush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/notify"
)

var (
	// ErrDisabled is returned when web push is not enabled.
	ErrDisabled = errors.New("webpush notifications are disabled")
	// ErrNoSubscriptions is returned when there is nobody to notify.
	ErrNoSubscriptions = errors.New("no push subscriptions registered")
	// ErrAllSubscriptionsInvalid is returned when every subscription was gone or unknown to its push service.
	ErrAllSubscriptionsInvalid = errors.New("all push subscriptions are invalid or expired")
)

const icon = "/static/icons/icon-192x192.png"

// SubscriptionStore persists push subscriptions.
type SubscriptionStore interface {
	SavePushSubscription(ctx context.Context, sub database.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptions(ctx context.Context) ([]database.PushSubscription, error)
}

// Subscription is a push subscription as sent by the browser.
type Subscription struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
	UserAgent string `json:"userAgent,omitempty"`
}

// NotificationPayload represents the payload sent to the client.
type NotificationPayload struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Icon  string         `json:"icon"`
	Badge string         `json:"badge"`
	Data  map[string]any `json:"data"`
}

// Client sends push notifications to every stored subscription.
type Client struct {
	config *config.WebPushConfig
	store  SubscriptionStore
}

var _ notify.Notifier = (*Client)(nil)

// NewClient creates a new webpush client.
func NewClient(cfg *config.WebPushConfig, store SubscriptionStore) *Client {
	return &Client{config: cfg, store: store}
}

// GenerateVAPIDKeys generates a new VAPID key pair.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}

// PublicKey returns the VAPID public key browsers subscribe with.
func (c *Client) PublicKey() string {
	return c.config.PublicKey
}

func (c *Client) Name() string { return "webpush" }

// Subscribe stores sub, replacing any subscription with the same endpoint.
func (c *Client) Subscribe(ctx context.Context, sub Subscription) error {
	if !c.config.Enabled {
		return ErrDisabled
	}
	err := c.store.SavePushSubscription(ctx, database.PushSubscription{
		Endpoint:  sub.Endpoint,
		P256dh:    sub.Keys.P256dh,
		Auth:      sub.Keys.Auth,
		UserAgent: sub.UserAgent,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	log.Info("added push subscription", "userAgent", sub.UserAgent)
	return nil
}

// Unsubscribe removes the subscription with endpoint.
func (c *Client) Unsubscribe(ctx context.Context, endpoint string) error {
	if err := c.store.DeletePushSubscription(ctx, endpoint); err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return nil
}

// Send pushes the quote to all subscriptions. Subscriptions the push service
// reports as gone are removed. It succeeds if at least one push was accepted.
func (c *Client) Send(ctx context.Context, d notify.Delivery) error {
	if !c.config.Enabled {
		return ErrDisabled
	}

	subs, err := c.store.ListPushSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return ErrNoSubscriptions
	}

	payload, err := json.Marshal(NotificationPayload{
		Title: d.Title,
		Body:  d.Quote.ShareText(),
		Icon:  icon,
		Badge: icon,
		Data: map[string]any{
			"type":      "quote",
			"quoteId":   d.Quote.ID,
			"url":       d.Link(),
			"timestamp": time.Now().Unix(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	var (
		lastErr           error
		success, invalid int
	)
	for _, sub := range subs {
		status, err := c.push(ctx, payload, sub)
		switch {
		case status == http.StatusGone || status == http.StatusNotFound:
			invalid++
			log.Debug("removing expired push subscription", "endpoint", sub.Endpoint)
			if err := c.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
				log.Error("failed to delete push subscription", "error", err)
			}
		case err != nil:
			log.Error("failed to send push notification", "endpoint", sub.Endpoint, "error", err)
			lastErr = err
		default:
			success++
		}
	}

	if invalid == len(subs) {
		return ErrAllSubscriptionsInvalid
	}
	if success > 0 {
		log.Info("sent push notification", "successful", success, "total", len(subs))
		return nil
	}
	return fmt.Errorf("failed to send push notification to any subscription: %w", lastErr)
}

func (c *Client) push(ctx context.Context, payload []byte, sub database.PushSubscription) (int, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
	}, &webpush.Options{
		Subscriber:      c.config.VAPIDEmail,
		VAPIDPublicKey:  c.config.PublicKey,
		VAPIDPrivateKey: c.config.PrivateKey,
		TTL:             60 * 60,
		RecordSize:      3000, // higher caused issues with firefox on android
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
