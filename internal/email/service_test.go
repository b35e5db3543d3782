package email

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/emails/welcome/html.tmpl":      {Data: []byte(`<p>Hello {{.Name}}</p>`)},
		"templates/emails/welcome/plaintext.tmpl": {Data: []byte(`Hello {{.Name}}`)},
		"templates/emails/README.md":              {Data: []byte(`ignored`)},
	}
}

func TestNewEmailServiceProviders(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*config.Config)
		wantErr string
		enabled bool
	}{
		{name: "none", setup: func(c *config.Config) { c.Email.Provider = "none" }},
		{name: "empty means none", setup: func(c *config.Config) {}},
		{name: "sendgrid without key", setup: func(c *config.Config) { c.Email.Provider = "sendgrid" }, wantErr: "SENDGRID_API_KEY"},
		{name: "sendgrid", setup: func(c *config.Config) {
			c.Email.Provider = "sendgrid"
			c.Sendgrid.APIKey = "SG.test"
		}, enabled: true},
		{name: "smtp without host", setup: func(c *config.Config) { c.Email.Provider = "smtp" }, wantErr: "SMTP_HOST"},
		{name: "unknown", setup: func(c *config.Config) { c.Email.Provider = "pigeon" }, wantErr: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.setup(cfg)

			svc, err := NewEmailService(cfg, testFS())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, svc.Enabled())
			assert.Len(t, svc.Templates, 1)
		})
	}
}

func TestEmbeddedTemplatesLoad(t *testing.T) {
	svc, err := NewEmailService(&config.Config{}, nil)
	require.NoError(t, err)
	assert.Contains(t, svc.Templates, "member_joined")
}

func TestNoTemplates(t *testing.T) {
	_, err := NewEmailService(&config.Config{}, fstest.MapFS{
		"templates/emails/.keep": {Data: nil},
	})
	assert.Error(t, err)
}

func TestSendEmailRendersWithoutDelivering(t *testing.T) {
	svc, err := NewEmailService(&config.Config{}, testFS())
	require.NoError(t, err)

	err = svc.SendEmail(context.Background(), EmailData{
		To:           "a@example.com",
		TemplateName: "welcome",
		TemplateData: map[string]string{"Name": "Ada"},
	})
	assert.NoError(t, err)

	err = svc.SendEmail(context.Background(), EmailData{TemplateName: "missing"})
	assert.ErrorContains(t, err, "template missing not found")
}

func TestRenderTemplateEscapesHTML(t *testing.T) {
	svc, err := NewEmailService(&config.Config{}, testFS())
	require.NoError(t, err)

	html, text, err := svc.renderTemplate("welcome", map[string]string{"Name": "<b>Ada</b>"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello &lt;b&gt;Ada&lt;/b&gt;</p>", html)
	assert.Equal(t, "Hello <b>Ada</b>", text)
}

func TestBuildMIMEMessage(t *testing.T) {
	msg := string(buildMIMEMessage(EmailData{
		To:       "to@example.com",
		From:     "from@example.com",
		FromName: "AudienceLab",
		Subject:  "Hi",
	}, "<p>html</p>", "text", "BOUNDARY"))

	assert.True(t, strings.HasPrefix(msg, "From: AudienceLab <from@example.com>\r\n"))
	assert.Contains(t, msg, "To: to@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hi\r\n")
	assert.Contains(t, msg, "multipart/alternative; boundary=BOUNDARY")
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("text")))
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString([]byte("<p>html</p>")))
	assert.True(t, strings.HasSuffix(msg, "--BOUNDARY--"))
}
