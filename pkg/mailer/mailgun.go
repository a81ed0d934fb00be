package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const mailgunTimeout = 10 * time.Second

// Sender delivers a rendered message. html may be empty.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun is a Sender backed by the Mailgun HTTP API.
type Mailgun struct {
	client *mg.MailgunImpl
	From   string
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), From: from}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	ctx, cancel := context.WithTimeout(ctx, mailgunTimeout)
	defer cancel()
	_, _, err := m.client.Send(ctx, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
