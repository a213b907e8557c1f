package main

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer delivers a contact form submission to the site owner.
type Mailer interface {
	Send(ctx context.Context, to string, msg ContactMessage) error
}

// smtpRelay sends through the configured SMTP server with STARTTLS and
// plain auth, one connection per message.
type smtpRelay struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// newMailer returns nil when the relay is not configured.
func newMailer(cfg Config) Mailer {
	if !cfg.RelayConfigured() {
		return nil
	}
	return &smtpRelay{
		host:     cfg.SMTPServer,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFromEmail,
	}
}

func (s *smtpRelay) Send(ctx context.Context, to string, msg ContactMessage) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	if err := m.ReplyTo(*msg.Email); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}
	m.Subject("Portfolio Contact: " + *msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, contactBody(msg))

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.user),
		mail.WithPassword(s.password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("deliver message: %w", err)
	}
	return nil
}

func contactBody(msg ContactMessage) string {
	return fmt.Sprintf(`New message from your portfolio contact form:

Name: %s
Email: %s
Subject: %s

Message:
%s

---
You can reply directly to: %s
`, *msg.Name, *msg.Email, *msg.Subject, *msg.Message, *msg.Email)
}
