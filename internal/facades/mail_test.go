package facades

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake SendGrid client ---

type fakeSender struct {
	sent   []*mail.SGMailV3
	status int
	err    error
}

func (f *fakeSender) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

// --- Tests ---

func TestSendGridMailer_Send(t *testing.T) {
	sender := &fakeSender{status: 202}
	m := NewSendGridMailerWithClient(sender, "noreply@clima.app", "Clima")

	err := m.Send(context.Background(), "alice@x.com", "Reset", "link: http://x")
	assert.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Reset", msg.Subject)
	assert.Equal(t, "noreply@clima.app", msg.From.Address)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "alice@x.com", msg.Personalizations[0].To[0].Address)
	assert.Equal(t, "link: http://x", msg.Content[0].Value)
}

func TestSendGridMailer_ProviderStatus(t *testing.T) {
	m := NewSendGridMailerWithClient(&fakeSender{status: 401}, "noreply@clima.app", "Clima")

	err := m.Send(context.Background(), "alice@x.com", "Reset", "body")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendGridMailer_TransportError(t *testing.T) {
	m := NewSendGridMailerWithClient(&fakeSender{err: errors.New("timeout")}, "noreply@clima.app", "Clima")

	err := m.Send(context.Background(), "alice@x.com", "Reset", "body")
	assert.Error(t, err)
}

func TestSendGridMailer_Unconfigured(t *testing.T) {
	m := NewSendGridMailer("", "noreply@clima.app", "Clima")

	assert.NoError(t, m.Send(context.Background(), "alice@x.com", "Reset", "body"))
}
