package email

import "propel_backend/internal/logger"

// NoopProvider используется в development и тестах, когда SMTP не настроен.
// Письма не отправляются, а логируются.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(email *Email) error {
	logger.Info("email suppressed (noop provider)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *NoopProvider) SendVerification(to, token string) error {
	logger.Info("verification email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopProvider) SendPasswordReset(to, token string) error {
	logger.Info("password reset email suppressed (noop provider)", "to", to)
	return nil
}

func (p *NoopProvider) SendReport(to, propertyAddress string, pdf []byte) error {
	logger.Info("report email suppressed (noop provider)", "to", to, "property", propertyAddress, "pdf_bytes", len(pdf))
	return nil
}
