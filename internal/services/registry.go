package services

import (
	"propel_backend/internal/email"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	AccountService  AccountService
	PropertyService PropertyService
	ReportService   ReportService
	EmailService    email.Provider
}
