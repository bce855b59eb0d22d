package queue

// Имя очереди заданий на отправку почты
const EmailQueueName = "email.dispatch"

// Виды почтовых заданий
const (
	EmailKindVerification  = "verification"
	EmailKindPasswordReset = "password_reset"
	EmailKindReport        = "report"
)

// EmailJob - одно задание на отправку письма. Задание публикуется
// ПОСЛЕ того, как бизнес-операция завершилась и ответ ушел клиенту:
// сбой почты никогда не откатывает состояние аккаунта.
type EmailJob struct {
	Kind  string `json:"kind"`
	To    string `json:"to"`
	Token string `json:"token,omitempty"`

	// Поля отчета об инспекции
	PropertyAddress string `json:"property_address,omitempty"`
	PDF             []byte `json:"pdf,omitempty"`
}
