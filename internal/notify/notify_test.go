package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	err  error
	sent []Delivery
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Send(_ context.Context, d Delivery) error {
	r.sent = append(r.sent, d)
	return r.err
}

func TestSendAll(t *testing.T) {
	boom := errors.New("boom")
	ok := &recorder{name: "ok"}
	failing := &recorder{name: "failing", err: boom}

	d := Delivery{Title: "Quote of the Day", Quote: domain.Quote{ID: "q1", Text: "Be brief", Author: "Anon"}}
	err := SendAll(context.Background(), []Notifier{failing, ok}, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing: boom")

	assert.Len(t, ok.sent, 1)
	assert.Len(t, failing.sent, 1)

	assert.NoError(t, SendAll(context.Background(), nil, d))
}

func TestDelivery(t *testing.T) {
	d := Delivery{Quote: domain.Quote{ID: "q1", Text: "Be brief", Author: "Anon"}}
	assert.Equal(t, "quotevault://quote/q1", d.Link())
	assert.Equal(t, "\"Be brief\"\n\n- Anon\n\nShared via QuoteVault", d.Message())
}
