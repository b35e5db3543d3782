// internal/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	texttemplate "text/template"

	"github.com/dangerclosesec/audiencelab"
	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

// Provider identifies supported email providers
type Provider string

const (
	ProviderNone     Provider = "none"
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"

	DefaultTemplatePath = "templates/emails"
)

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	From         string
	FromName     string
	Subject      string
	TemplateName string
	TemplateData any
}

//go:generate mockgen -typed -source=./service.go -destination=../mocks/mock_sender.go -package=mocks Sender

// Sender delivers a rendered template. Service is the production implementation.
type Sender interface {
	SendEmail(ctx context.Context, data EmailData) error
}

// Service handles email operations
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
	Templates      map[string]*Template
}

type Template struct {
	HTML      *template.Template
	Plaintext *texttemplate.Template
}

// NewEmailService creates an email service for the provider named in the
// configuration. Templates are loaded from fsys, which defaults to the
// embedded template tree when nil.
func NewEmailService(cfg *config.Config, fsys fs.FS) (*Service, error) {
	if fsys == nil {
		fsys = audiencelab.EmailFS
	}

	s := &Service{
		config:    cfg,
		provider:  Provider(cfg.Email.Provider),
		Templates: make(map[string]*Template),
	}

	switch s.provider {
	case ProviderSendgrid:
		if cfg.Sendgrid.APIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires SENDGRID_API_KEY")
		}
		s.sendgridClient = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	case ProviderSMTP:
		if cfg.SMTP.Host == "" {
			return nil, fmt.Errorf("smtp provider requires SMTP_HOST")
		}
	case ProviderNone, "":
		s.provider = ProviderNone
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", s.provider)
	}

	if err := s.loadTemplates(fsys); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

// Enabled reports whether messages are actually delivered.
func (s *Service) Enabled() bool {
	return s.provider != ProviderNone
}

// loadTemplates loads every template group below DefaultTemplatePath. Each
// group is a directory holding html.tmpl and plaintext.tmpl.
func (s *Service) loadTemplates(fsys fs.FS) error {
	templateGroups, err := fs.ReadDir(fsys, DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("reading email templates directory: %w", err)
	}

	for _, group := range templateGroups {
		if !group.IsDir() {
			continue
		}

		groupPath := DefaultTemplatePath + "/" + group.Name()
		htmlTmpl, err := template.ParseFS(fsys, groupPath+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s html template: %w", group.Name(), err)
		}
		textTmpl, err := texttemplate.ParseFS(fsys, groupPath+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("parsing %s plaintext template: %w", group.Name(), err)
		}

		s.Templates[group.Name()] = &Template{HTML: htmlTmpl, Plaintext: textTmpl}
	}

	if len(s.Templates) == 0 {
		return fmt.Errorf("no email templates found")
	}

	return nil
}

// SendEmail renders the named template and sends it using the configured provider.
// With ProviderNone the message is rendered and dropped.
func (s *Service) SendEmail(ctx context.Context, data EmailData) error {
	htmlContent, textContent, err := s.renderTemplate(data.TemplateName, data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if data.FromName == "" {
		data.FromName = s.config.Email.FromName
	}

	switch s.provider {
	case ProviderSendgrid:
		if data.From == "" {
			data.From = s.config.Sendgrid.From
		}
		return s.sendWithSendgrid(ctx, data, htmlContent, textContent)
	case ProviderSMTP:
		if data.From == "" {
			data.From = s.config.SMTP.From
		}
		if data.From == "" {
			return fmt.Errorf("missing sender email address (From)")
		}
		return s.sendWithSMTP(data, htmlContent, textContent)
	case ProviderNone:
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

// renderTemplate renders a template with the given data
func (s *Service) renderTemplate(name string, data any) (string, string, error) {
	tmpl, exists := s.Templates[name]
	if !exists {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var htmlbuf bytes.Buffer
	if err := tmpl.HTML.Execute(&htmlbuf, data); err != nil {
		return "", "", fmt.Errorf("executing html template: %w", err)
	}

	var textbuf bytes.Buffer
	if err := tmpl.Plaintext.Execute(&textbuf, data); err != nil {
		return "", "", fmt.Errorf("executing plaintext template: %w", err)
	}

	return htmlbuf.String(), textbuf.String(), nil
}
