package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/notify"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/samber/lo"
)

const (
	dailyTitle = "Quote of the Day"
	shareTitle = "A quote for you"
)

// DeliverDailyQuote sends the quote of the day through every enabled channel.
// It does nothing when notifications are turned off in the user settings.
func (e *Engine) DeliverDailyQuote(ctx context.Context) error {
	settings, err := e.settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationEnabled {
		log.Info("daily quote notifications are disabled, nothing to deliver")
		return nil
	}
	if len(e.notifiers) == 0 {
		return ErrNoNotifiers
	}

	q, err := e.quotes.GetQuoteOfDay(ctx)
	if err != nil {
		return fmt.Errorf("failed to get quote of the day: %w", err)
	}
	if q == nil {
		return ErrNoQuoteOfDay
	}

	log.Info("delivering quote of the day", "quote", q.ID, "channels", len(e.notifiers))
	return notify.SendAll(ctx, e.notifiers, e.delivery(ctx, dailyTitle, *q))
}

// Share returns the share message of a quote. With channels given it also sends
// the quote through each of them.
func (e *Engine) Share(ctx context.Context, quoteID string, channels ...string) (string, error) {
	q, err := e.quotes.GetQuote(ctx, quoteID)
	if err != nil {
		return "", fmt.Errorf("failed to get quote: %w", err)
	}
	if q == nil {
		return "", ErrQuoteNotFound
	}

	msg := domain.ShareMessage(*q)
	if len(channels) == 0 {
		return msg, nil
	}

	notifiers, err := e.selectNotifiers(channels)
	if err != nil {
		return "", err
	}
	return msg, notify.SendAll(ctx, notifiers, e.delivery(ctx, shareTitle, *q))
}

func (e *Engine) selectNotifiers(channels []string) ([]notify.Notifier, error) {
	byName := lo.KeyBy(e.notifiers, func(n notify.Notifier) string { return n.Name() })
	out := make([]notify.Notifier, 0, len(channels))
	for _, ch := range lo.Uniq(channels) {
		n, ok := byName[ch]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNotifier, ch)
		}
		out = append(out, n)
	}
	return out, nil
}

func (e *Engine) delivery(ctx context.Context, title string, q domain.Quote) notify.Delivery {
	d := notify.Delivery{Title: title, Quote: q}
	if u := e.auth.GetCurrentUser(ctx); u != nil {
		d.Recipient = u.Email
	}
	return d
}

// Resolved is the target of a deep link.
type Resolved struct {
	Link       domain.Link        `json:"link"`
	Quote      *domain.Quote      `json:"quote,omitempty"`
	Collection *domain.Collection `json:"collection,omitempty"`
}

// ResolveLink parses a deep link and loads its target from the local cache.
func (e *Engine) ResolveLink(ctx context.Context, raw string) (*Resolved, error) {
	link, err := domain.ParseLink(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}

	res := &Resolved{Link: link}
	switch link.Kind {
	case domain.LinkQuote:
		if res.Quote, err = e.quotes.GetQuote(ctx, link.ID); err != nil {
			return nil, err
		}
		if res.Quote == nil {
			return nil, ErrQuoteNotFound
		}
	case domain.LinkCollection:
		if res.Collection, err = e.collections.GetCollection(ctx, link.ID); err != nil {
			return nil, err
		}
		if res.Collection == nil {
			return nil, repository.ErrCollectionNotFound
		}
	}
	return res, nil
}
