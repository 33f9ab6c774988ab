package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Equal(t, "0 quotes", count(0, "quote"))
	assert.Equal(t, "1 quote", count(1, "quote"))
	assert.Equal(t, "12,345 quotes", count(12345, "quote"))
}

func TestSince(t *testing.T) {
	assert.Equal(t, "unknown", since(nil))
	assert.Equal(t, "unknown", since(&time.Time{}))

	ts := time.Now().Add(-3 * time.Hour)
	assert.Equal(t, "3 hours ago", since(&ts))
}

func TestPrintQuote(t *testing.T) {
	var buf bytes.Buffer
	printQuote(&buf, domain.Quote{
		ID:           "q1",
		Text:         "Stay hungry",
		Author:       "Steve Jobs",
		CategoryName: lo.ToPtr("Motivation"),
		IsFavorite:   true,
	})
	assert.Equal(t, "* [q1] \"Stay hungry\"\n    - Steve Jobs (Motivation)\n", buf.String())
}

func TestPrintPage(t *testing.T) {
	var buf bytes.Buffer
	printPage(&buf, repository.Page[domain.Quote]{})
	assert.Equal(t, "No quotes found.\n", buf.String())

	buf.Reset()
	printPage(&buf, repository.Page[domain.Quote]{
		Items:   []domain.Quote{{ID: "q1", Text: "a", Author: "b"}},
		Page:    2,
		HasMore: true,
	})
	assert.Contains(t, buf.String(), "page 2, 1 quote, next page: --page 3")
}

func TestPrintCollection(t *testing.T) {
	var buf bytes.Buffer
	printCollection(&buf, domain.Collection{
		ID:          "c1",
		Name:        "Mornings",
		Description: lo.ToPtr("Read before coffee"),
		CoverColor:  "nope",
		QuoteCount:  2,
	})
	out := buf.String()
	assert.Contains(t, out, "[c1] Mornings (2 quotes, "+domain.DefaultCoverColor+") updated unknown")
	assert.Contains(t, out, "Read before coffee")
}

func TestPrintSettings(t *testing.T) {
	var buf bytes.Buffer
	printSettings(&buf, domain.DefaultSettings())
	assert.Contains(t, buf.String(), "Delivery time: 09:00")
	assert.Contains(t, buf.String(), "Notifications: true")
}
