package email

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config    *SMTPConfig
	templates *TemplateManager
	dialer    *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPProvider{
		config:    config,
		templates: tm,
		dialer:    gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}, nil
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}
	if p.config.FromName != "" {
		m.SetAddressHeader("From", from, p.config.FromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/html", email.HTMLBody)

	for _, att := range email.Attachments {
		att := att
		m.Attach(att.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	return p.dialer.DialAndSend(m)
}

// SendVerification отправляет ссылку подтверждения email
func (p *SMTPProvider) SendVerification(to, token string) error {
	verifyURL := fmt.Sprintf("%s/accounts/verify-email/%s", p.config.BaseURL, token)

	htmlBody, err := p.templates.Render("verification", TemplateData{"VerifyURL": verifyURL})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Propel Inspections - Verify Email",
		HTMLBody: htmlBody,
	})
}

// SendPasswordReset отправляет ссылку сброса пароля
func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	resetURL := fmt.Sprintf("%s/accounts/reset-password?token=%s", p.config.BaseURL, token)

	htmlBody, err := p.templates.Render("password_reset", TemplateData{"ResetURL": resetURL})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Propel Inspections - Reset Password",
		HTMLBody: htmlBody,
	})
}

// SendReport отправляет PDF-отчет об инспекции вложением
func (p *SMTPProvider) SendReport(to, propertyAddress string, pdf []byte) error {
	htmlBody, err := p.templates.Render("report", TemplateData{"PropertyAddress": propertyAddress})
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       []string{to},
		Subject:  "Propel Inspections - Inspection Report",
		HTMLBody: htmlBody,
		Attachments: []Attachment{
			{
				Name:        "inspection-report.pdf",
				Content:     pdf,
				ContentType: "application/pdf",
			},
		},
	})
}
