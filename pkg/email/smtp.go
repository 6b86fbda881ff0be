package email

import (
	"bytes"
	"context"
	"fmt"
	"os"

	mail "github.com/wneessen/go-mail"

	"github.com/entrhq/cadence/pkg/config"
)

// smtpSender delivers via plain SMTP with STARTTLS. The password comes
// from the environment variable named in the config, never the file itself.
type smtpSender struct {
	cfg      *config.SMTPConfig
	password string
}

func newSMTPSender(cfg *config.SMTPConfig) (*smtpSender, error) {
	passwordEnv := cfg.PasswordEnv
	if passwordEnv == "" {
		passwordEnv = "SMTP_PASSWORD"
	}
	password := os.Getenv(passwordEnv)
	if password == "" {
		return nil, fmt.Errorf("set %s environment variable for SMTP delivery", passwordEnv)
	}
	return &smtpSender{cfg: cfg, password: password}, nil
}

func (s *smtpSender) Send(ctx context.Context, msg *Message) error {
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.Username); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	for cid, png := range msg.Images {
		m.EmbedReader(cid+".png", bytes.NewReader(png), mail.WithFileContentID(cid))
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("SMTP delivery failed: %w", err)
	}
	return nil
}
