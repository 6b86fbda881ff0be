package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/entrhq/cadence/pkg/config"
)

// gmailSender delivers via the Gmail API using locally cached OAuth
// credentials. The token file must already exist; the interactive consent
// flow is out of band.
type gmailSender struct {
	oauth *oauth2.Config
	token *oauth2.Token
}

func newGmailSender(cfg *config.GmailConfig) (*gmailSender, error) {
	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail credentials: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(creds, gmailapi.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gmail credentials: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail token (run the OAuth consent flow first): %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("failed to parse gmail token: %w", err)
	}

	return &gmailSender{oauth: oauthCfg, token: &token}, nil
}

func (g *gmailSender) Send(ctx context.Context, msg *Message) error {
	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(g.oauth.Client(ctx, g.token)))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	raw, err := buildMIME(msg)
	if err != nil {
		return err
	}

	_, err = svc.Users.Messages.Send("me", &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Do()
	if err != nil {
		return fmt.Errorf("gmail delivery failed: %w", err)
	}
	return nil
}

// buildMIME assembles the RFC 822 message: HTML body plus inline PNGs as
// multipart/related parts referenced by Content-ID.
func buildMIME(msg *Message) ([]byte, error) {
	var b strings.Builder

	if len(msg.Images) == 0 {
		b.WriteString("To: " + msg.To + "\r\n")
		b.WriteString("Subject: " + msg.Subject + "\r\n")
		b.WriteString("MIME-Version: 1.0\r\n")
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.HTML)
		return []byte(b.String()), nil
	}

	var body strings.Builder
	w := multipart.NewWriter(&body)

	htmlPart, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"UTF-8\""},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	if _, err := htmlPart.Write([]byte(msg.HTML)); err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	for cid, png := range msg.Images {
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"image/png"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-ID":                {"<" + cid + ">"},
			"Content-Disposition":       {fmt.Sprintf("inline; filename=%q", cid+".png")},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build message: %w", err)
		}
		if _, err := part.Write([]byte(base64.StdEncoding.EncodeToString(png))); err != nil {
			return nil, fmt.Errorf("failed to build message: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/related; boundary=" + w.Boundary() + "\r\n\r\n")
	b.WriteString(body.String())
	return []byte(b.String()), nil
}
