package email

// Attachment представляет вложение в email
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email представляет структуру email сообщения
type Email struct {
	From        string
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// Provider - интерфейс отправки почты. Отправка всегда fire-and-forget
// с точки зрения бизнес-операций: ее провал не откатывает мутации БД.
type Provider interface {
	// Send отправляет произвольное письмо
	Send(email *Email) error

	// SendVerification отправляет ссылку подтверждения email
	SendVerification(to, token string) error

	// SendPasswordReset отправляет ссылку сброса пароля
	SendPasswordReset(to, token string) error

	// SendReport отправляет PDF-отчет об инспекции вложением
	SendReport(to, propertyAddress string, pdf []byte) error
}
