// Package email delivers rendered digest reports. Two interchangeable
// backends are provided: Gmail API and plain SMTP. Delivery failures
// propagate and abort the run; retrying is the scheduler's job.
package email

import (
	"context"
	"fmt"

	"github.com/entrhq/cadence/pkg/config"
)

// Message is a rendered report ready for delivery. Images are inline PNGs
// keyed by content ID, referenced from the HTML as cid: URLs.
type Message struct {
	To      string
	Subject string
	HTML    string
	Images  map[string][]byte
}

// Sender is the delivery boundary. Implementations are opaque to the core.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// NewSender builds the sender selected by the configuration.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailMethod {
	case "smtp":
		if cfg.SMTP == nil {
			return nil, fmt.Errorf("smtp settings required in config for email_method: smtp")
		}
		return newSMTPSender(cfg.SMTP)
	case "gmail":
		if cfg.Gmail == nil {
			return nil, fmt.Errorf("gmail credential paths required in config for email_method: gmail")
		}
		return newGmailSender(cfg.Gmail)
	default:
		return nil, fmt.Errorf("unknown email_method: %q", cfg.EmailMethod)
	}
}
