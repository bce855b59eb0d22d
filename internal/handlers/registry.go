package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	AccountHandler  *AccountHandler
	PropertyHandler *PropertyHandler
}
