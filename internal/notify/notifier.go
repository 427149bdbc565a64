// Package notify delivers reminder messages over email and Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Disabled. Callers treat it like any other
// delivery failure.
var ErrNotConfigured = errors.New("no notification transport configured")

// Message is a rendered notification for one recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Notifier hands a message to a transport. A nil error means the transport
// accepted it for delivery.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Disabled refuses every message.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error {
	return ErrNotConfigured
}

// Fanout sends to every notifier and succeeds if at least one accepted the
// message.
type Fanout []Notifier

func (f Fanout) Send(ctx context.Context, msg Message) error {
	if len(f) == 0 {
		return ErrNotConfigured
	}

	var errs []error
	for i, n := range f {
		if err := n.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	if len(errs) == len(f) {
		return errors.Join(errs...)
	}
	return nil
}
