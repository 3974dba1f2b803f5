package notify

import (
	"fmt"
	"log"

	mail "github.com/wneessen/go-mail"

	"github.com/gibbsgresge/CrisisEventSite/config"
)

// Notifier delivers one message to one recipient, best-effort.
type Notifier interface {
	Send(to, subject, body string) error
}

// Mailer is the SMTP-backed Notifier.
type Mailer struct {
	client *mail.Client
	from   string
	logger *log.Logger
}

// NewMailer builds an SMTP mailer from config.
func NewMailer(cfg config.SMTPConfig, logger *log.Logger) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp.host not configured")
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[MAIL] ", log.LstdFlags)
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{client: client, from: from, logger: logger}, nil
}

// Send delivers one plain-text message. One attempt, no retry.
func (m *Mailer) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	m.logger.Printf("email sent to %s", to)
	return nil
}
