package facades

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender is the part of the SendGrid client the mailer uses.
type EmailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer sends plain-text transactional email through SendGrid.
type SendGridMailer struct {
	client EmailSender
	from   *mail.Email
}

// NewSendGridMailer creates a mailer for the given API key and sender.
// With an empty API key messages are logged instead of sent.
func NewSendGridMailer(apiKey, fromAddress, fromName string) *SendGridMailer {
	var client EmailSender
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return NewSendGridMailerWithClient(client, fromAddress, fromName)
}

// NewSendGridMailerWithClient creates a mailer around an existing client.
func NewSendGridMailerWithClient(client EmailSender, fromAddress, fromName string) *SendGridMailer {
	return &SendGridMailer{
		client: client,
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// Send delivers one message. Any non-2xx provider response is an error.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.client == nil {
		logger.Log.Warnw("sendgrid not configured, email not sent", "to", to, "subject", subject)
		return nil
	}

	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), body, "")
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.Log.Errorw("failed to send email via sendgrid", "to", to, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Errorw("sendgrid rejected email", "to", to, "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("send email: provider returned status %d", resp.StatusCode)
	}

	logger.Log.Infow("email sent", "to", to, "subject", subject, "status", resp.StatusCode)
	return nil
}
