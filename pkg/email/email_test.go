package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/cadence/pkg/config"
)

func TestNewSender_Selection(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr string
	}{
		{
			name:    "unknown method",
			cfg:     &config.Config{EmailMethod: "pigeon"},
			wantErr: "unknown email_method",
		},
		{
			name:    "smtp without settings",
			cfg:     &config.Config{EmailMethod: "smtp"},
			wantErr: "smtp settings required",
		},
		{
			name:    "gmail without settings",
			cfg:     &config.Config{EmailMethod: "gmail"},
			wantErr: "gmail credential paths required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSender(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewSender_SMTP(t *testing.T) {
	t.Setenv("SMTP_PASSWORD", "hunter2")
	cfg := &config.Config{
		EmailMethod: "smtp",
		SMTP: &config.SMTPConfig{
			Host:     "smtp.example.com",
			Username: "me@example.com",
		},
	}

	sender, err := NewSender(cfg)
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

func TestBuildMIME_PlainHTML(t *testing.T) {
	raw, err := buildMIME(&Message{
		To:      "me@example.com",
		Subject: "Daily Cadence Report: 2026-08-30",
		HTML:    "<html><body>hi</body></html>",
	})
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "To: me@example.com\r\n")
	assert.Contains(t, msg, "Subject: Daily Cadence Report: 2026-08-30\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(msg, "<html><body>hi</body></html>"))
}

func TestBuildMIME_InlineImages(t *testing.T) {
	raw, err := buildMIME(&Message{
		To:      "me@example.com",
		Subject: "Weekly Cadence Summary",
		HTML:    `<img src="cid:hourly">`,
		Images: map[string][]byte{
			"hourly": {0x89, 'P', 'N', 'G'},
		},
	})
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "Content-Type: multipart/related")
	assert.Contains(t, msg, "Content-ID: <hourly>")
	assert.Contains(t, msg, "Content-Type: image/png")
	assert.Contains(t, msg, `<img src="cid:hourly">`)
}
