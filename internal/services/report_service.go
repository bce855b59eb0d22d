package services

import (
	"context"

	"gorm.io/gorm"

	"propel_backend/internal/auth"
	"propel_backend/internal/logger"
	"propel_backend/internal/metrics"
	"propel_backend/internal/queue"
	"propel_backend/internal/report"
	"propel_backend/internal/repositories"
	"propel_backend/pkg/apperrors"
)

// ReportService - формирование и отправка PDF-отчетов об инспекции
type ReportService interface {
	// SendReport рендерит отчет и отправляет его на email.
	// Пустой toEmail = email владельца записи.
	SendReport(db *gorm.DB, propertyID, toEmail string, principal auth.Principal) error
}

type ReportServiceImpl struct {
	propertyRepo repositories.PropertyRepository
	accountRepo  repositories.AccountRepository
	renderer     report.Renderer
	dispatcher   queue.Dispatcher
}

func NewReportService(
	propertyRepo repositories.PropertyRepository,
	accountRepo repositories.AccountRepository,
	renderer report.Renderer,
	dispatcher queue.Dispatcher,
) ReportService {
	return &ReportServiceImpl{
		propertyRepo: propertyRepo,
		accountRepo:  accountRepo,
		renderer:     renderer,
		dispatcher:   dispatcher,
	}
}

func (s *ReportServiceImpl) SendReport(db *gorm.DB, propertyID, toEmail string, principal auth.Principal) error {
	property, err := s.propertyRepo.FindByID(db, propertyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CanAccess(principal, property.AccountID) {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}

	if toEmail == "" {
		owner, err := s.accountRepo.FindByID(db, property.AccountID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		toEmail = owner.Email
	}

	pdf, err := s.renderer.Render(property)
	if err != nil {
		return apperrors.InternalError(err)
	}

	job := queue.EmailJob{
		Kind:            queue.EmailKindReport,
		To:              toEmail,
		PropertyAddress: property.PropertyAddress,
		PDF:             pdf,
	}
	if err := s.dispatcher.Dispatch(context.Background(), job); err != nil {
		logger.Error("failed to dispatch report email", "property_id", propertyID, "error", err)
		return apperrors.InternalError(err)
	}

	metrics.EmailsDispatched.WithLabelValues(queue.EmailKindReport).Inc()
	return nil
}
