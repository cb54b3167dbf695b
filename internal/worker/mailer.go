package worker

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"tasklane.app/server/core/config"
)

// MailSender delivers a single email.
type MailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type resendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(cfg config.ResendConfig) MailSender {
	return &resendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}
}

func (s *resendSender) Send(ctx context.Context, to, subject, html string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}
