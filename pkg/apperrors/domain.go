package apperrors

import "net/http"

// Предопределенные ошибки домена аутентификации и учетных записей.
// Сообщения совпадают с тем, что отдается клиенту, поэтому менять их
// нужно синхронно с интеграционными тестами.

var (
	// ErrInvalidCredentials - неверный email или пароль.
	// Одна ошибка на оба случая, чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Email or password is incorrect", http.StatusUnauthorized)

	// ErrInvalidToken - refresh/reset токен не найден, истек или отозван.
	// Намеренно один код на все три случая (защита от перебора).
	ErrInvalidToken = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)

	// ErrVerificationFailed - токен верификации email не найден или уже использован
	ErrVerificationFailed = New(CodeVerificationFailed, "auth", "Verification failed", http.StatusBadRequest)

	// ErrAccountNotFound - аккаунт не найден (админский CRUD)
	ErrAccountNotFound = New(CodeNotFound, "account", "Account not found", http.StatusNotFound)

	// ErrEmailAlreadyTaken - конфликт email при обновлении профиля
	ErrEmailAlreadyTaken = New(CodeAlreadyExists, "account", "Email is already taken", http.StatusConflict)

	// ErrPropertyNotFound - запись об инспекции не найдена
	ErrPropertyNotFound = New(CodeNotFound, "property", "Property not found", http.StatusNotFound)
)

// NewTokenReuse помечает повторное использование отозванного refresh-токена.
// HTTP-поверхность обязана отдавать его как обычный ErrInvalidToken.
func NewTokenReuse(token string) *AppError {
	return New(CodeTokenReuse, "auth", "Refresh token reuse detected", http.StatusUnauthorized).
		WithDetails(map[string]string{"token": token})
}

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}
