package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const DefaultFromEmail = "noreply@agenda.com"

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGrid delivers email through the SendGrid v3 API.
type SendGrid struct {
	client sendGridClient
	from   *mail.Email
}

func NewSendGrid(apiKey, from string) *SendGrid {
	return newSendGrid(sendgrid.NewSendClient(apiKey), from)
}

func newSendGrid(client sendGridClient, from string) *SendGrid {
	if from == "" {
		from = DefaultFromEmail
	}
	return &SendGrid{client: client, from: mail.NewEmail("Weekly Agenda", from)}
}

func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("sendgrid: empty recipient")
	}

	email := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)
	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
