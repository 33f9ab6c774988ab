package webpush

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, enabled bool) (*Client, *database.Client) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "quotevault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	priv, pub, err := GenerateVAPIDKeys()
	require.NoError(t, err)

	return NewClient(&config.WebPushConfig{
		Enabled:    enabled,
		VAPIDEmail: "admin@example.com",
		PublicKey:  pub,
		PrivateKey: priv,
	}, db), db
}

func browserSubscription(t *testing.T, endpoint string) Subscription {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	secret := make([]byte, 16)
	_, err = rand.Read(secret)
	require.NoError(t, err)

	var sub Subscription
	sub.Endpoint = endpoint
	sub.Keys.P256dh = base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes())
	sub.Keys.Auth = base64.RawURLEncoding.EncodeToString(secret)
	return sub
}

var delivery = notify.Delivery{
	Title: "Quote of the Day",
	Quote: domain.Quote{ID: "q1", Text: "Be brief", Author: "Anon"},
}

func TestSend_RemovesGoneSubscriptions(t *testing.T) {
	var accepted atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		accepted.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, db := newTestClient(t, true)
	ctx := context.Background()
	require.NoError(t, c.Subscribe(ctx, browserSubscription(t, server.URL+"/ok")))
	require.NoError(t, c.Subscribe(ctx, browserSubscription(t, server.URL+"/gone")))

	require.NoError(t, c.Send(ctx, delivery))
	assert.Equal(t, int32(1), accepted.Load())

	subs, err := db.ListPushSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, server.URL+"/ok", subs[0].Endpoint)
}

func TestSend_AllInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, _ := newTestClient(t, true)
	ctx := context.Background()
	require.NoError(t, c.Subscribe(ctx, browserSubscription(t, server.URL+"/a")))

	assert.ErrorIs(t, c.Send(ctx, delivery), ErrAllSubscriptionsInvalid)
	assert.ErrorIs(t, c.Send(ctx, delivery), ErrNoSubscriptions)
}

func TestDisabled(t *testing.T) {
	c, _ := newTestClient(t, false)
	ctx := context.Background()

	assert.ErrorIs(t, c.Subscribe(ctx, browserSubscription(t, "https://push.example.com/a")), ErrDisabled)
	assert.ErrorIs(t, c.Send(ctx, delivery), ErrDisabled)
	assert.NotEmpty(t, c.PublicKey())
}

func TestUnsubscribe(t *testing.T) {
	c, db := newTestClient(t, true)
	ctx := context.Background()
	require.NoError(t, c.Subscribe(ctx, browserSubscription(t, "https://push.example.com/a")))
	require.NoError(t, c.Unsubscribe(ctx, "https://push.example.com/a"))

	subs, err := db.ListPushSubscriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
