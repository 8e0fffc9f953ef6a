// Package mailer sends the back-office notifications over SMTP.
package mailer

import (
	"context"
	"log/slog"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
)

type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string
	From     string

	To  []string
	Cc  []string
	Bcc []string

	Subject string

	TextBody string
	HTMLBody string

	Headers map[string]string
}

func (e Email) AllRecipients() []string {
	out := make([]string, 0, len(e.To)+len(e.Cc)+len(e.Bcc))
	out = append(out, e.To...)
	out = append(out, e.Cc...)
	out = append(out, e.Bcc...)
	return out
}

// New returns an SMTP mailer, or a Noop one when no SMTP host is configured.
func New(cfg config.SMTPConfig, l *slog.Logger) Service {
	if cfg.Host == "" {
		return Noop{log: l}
	}
	return NewSMTPMailer(cfg)
}

// Noop drops every message after logging its subject.
type Noop struct{ log *slog.Logger }

func (n Noop) Send(ctx context.Context, e Email) error {
	if n.log != nil {
		n.log.DebugContext(ctx, "mail_skipped", slog.String("subject", e.Subject), slog.Any("to", e.To))
	}
	return nil
}
