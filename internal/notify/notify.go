// Package notify defines how quotes are delivered outside of the app.
package notify

import (
	"context"
	"errors"

	"github.com/jon4hz/quotevault/internal/domain"
)

// Delivery is a quote sent to the user, either the daily quote or a shared one.
type Delivery struct {
	// Title is the notification title or email subject.
	Title string
	Quote domain.Quote
	// Recipient is the email address of the signed in user, if any.
	Recipient string
}

// Link returns the deep link that opens the delivered quote.
func (d Delivery) Link() string {
	return domain.QuoteLink(d.Quote.ID)
}

// Message returns the plain text body of the delivery.
func (d Delivery) Message() string {
	return domain.ShareMessage(d.Quote)
}

// Notifier delivers quotes through one channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, d Delivery) error
}

// SendAll delivers d through every notifier and joins their errors.
func SendAll(ctx context.Context, notifiers []Notifier, d Delivery) error {
	var errs []error
	for _, n := range notifiers {
		if err := n.Send(ctx, d); err != nil {
			errs = append(errs, &Error{Notifier: n.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

// Error is a failed delivery through one notifier.
type Error struct {
	Notifier string
	Err      error
}

func (e *Error) Error() string {
	return e.Notifier + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
