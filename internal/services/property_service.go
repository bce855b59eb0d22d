package services

import (
	"gorm.io/gorm"

	"propel_backend/internal/auth"
	"propel_backend/internal/models"
	"propel_backend/internal/repositories"
	"propel_backend/internal/services/dto"
	"propel_backend/pkg/apperrors"
)

// PropertyService - записи об инспекциях.
// Инспектор работает со своими записями, администратор - со всеми.
type PropertyService interface {
	GetAll(db *gorm.DB, principal auth.Principal) ([]models.Property, error)
	GetByID(db *gorm.DB, id string, principal auth.Principal) (*models.Property, error)
	GetByAccountID(db *gorm.DB, accountID string, principal auth.Principal) ([]models.Property, error)
	Create(db *gorm.DB, req *dto.PropertyRequest, accountID string) (*models.Property, error)
	Update(db *gorm.DB, id string, req *dto.PropertyRequest, principal auth.Principal) (*models.Property, error)
	Delete(db *gorm.DB, id string, principal auth.Principal) error
}

type PropertyServiceImpl struct {
	propertyRepo repositories.PropertyRepository
}

func NewPropertyService(propertyRepo repositories.PropertyRepository) PropertyService {
	return &PropertyServiceImpl{propertyRepo: propertyRepo}
}

func (s *PropertyServiceImpl) GetAll(db *gorm.DB, principal auth.Principal) ([]models.Property, error) {
	if principal.IsAdmin() {
		properties, _, err := s.propertyRepo.FindAll(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return properties, nil
	}

	properties, _, err := s.propertyRepo.FindByAccountID(db, principal.AccountID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return properties, nil
}

func (s *PropertyServiceImpl) GetByID(db *gorm.DB, id string, principal auth.Principal) (*models.Property, error) {
	property, err := s.findProperty(db, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanAccess(principal, property.AccountID) {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	return property, nil
}

func (s *PropertyServiceImpl) GetByAccountID(db *gorm.DB, accountID string, principal auth.Principal) ([]models.Property, error) {
	if !auth.CanAccess(principal, accountID) {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	properties, _, err := s.propertyRepo.FindByAccountID(db, accountID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return properties, nil
}

// Create сохраняет запись вместе с комнатами и ссылками на фото
// одним вызовом: GORM вставляет вложенные ассоциации каскадом
func (s *PropertyServiceImpl) Create(db *gorm.DB, req *dto.PropertyRequest, accountID string) (*models.Property, error) {
	property := buildProperty(req)
	property.AccountID = accountID

	if err := s.propertyRepo.Create(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return property, nil
}

// Update заменяет запись целиком: старые комнаты удаляются, присланные
// вставляются заново. Частичного обновления вложенности нет.
func (s *PropertyServiceImpl) Update(db *gorm.DB, id string, req *dto.PropertyRequest, principal auth.Principal) (*models.Property, error) {
	existing, err := s.findProperty(db, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanAccess(principal, existing.AccountID) {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	var updated *models.Property
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyDetail{}).Error; err != nil {
			return err
		}

		updated = buildProperty(req)
		updated.ID = existing.ID
		updated.AccountID = existing.AccountID
		updated.CreatedAt = existing.CreatedAt

		return s.propertyRepo.Save(tx, updated)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.findProperty(db, id)
}

func (s *PropertyServiceImpl) Delete(db *gorm.DB, id string, principal auth.Principal) error {
	property, err := s.findProperty(db, id)
	if err != nil {
		return err
	}

	if !auth.CanAccess(principal, property.AccountID) {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}

	if err := s.propertyRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PropertyServiceImpl) findProperty(db *gorm.DB, id string) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return property, nil
}

// buildProperty переносит поля запроса в модель
func buildProperty(req *dto.PropertyRequest) *models.Property {
	details := make([]models.PropertyDetail, 0, len(req.PropertyDetails))
	for _, d := range req.PropertyDetails {
		images := make([]models.PropertyImage, 0, len(d.PropertyImages))
		for _, url := range d.PropertyImages {
			images = append(images, models.PropertyImage{URL: url})
		}
		details = append(details, models.PropertyDetail{
			Name:           d.Name,
			Description:    d.Description,
			Floor:          d.Floor,
			Walls:          d.Walls,
			Ceiling:        d.Ceiling,
			Windows:        d.Windows,
			Doors:          d.Doors,
			PropertyImages: images,
		})
	}

	return &models.Property{
		PropertyAddress:             req.PropertyAddress,
		TenantName:                  req.TenantName,
		InspectorName:               req.InspectorName,
		InspectionDate:              req.InspectionDate,
		EPCExpDate:                  req.EPCExpDate,
		ECIRExpDate:                 req.ECIRExpDate,
		GasSafetyCertificateExpDate: req.GasSafetyCertificateExpDate,
		ElectricityMeter:            req.ElectricityMeter,
		ElectricityMeterReading:     req.ElectricityMeterReading,
		GasMeter:                    req.GasMeter,
		GasMeterReading:             req.GasMeterReading,
		WaterMeter:                  req.WaterMeter,
		WaterMeterReading:           req.WaterMeterReading,
		SmokeAlarm:                  req.SmokeAlarm,
		COAlarm:                     req.COAlarm,
		HeatingSystem:               req.HeatingSystem,
		SignatureInspector:          req.SignatureInspector,
		SignatureTenant:             req.SignatureTenant,
		AdvisedTenantTo:             req.AdvisedTenantTo,
		AskedLandlordTo:             req.AskedLandlordTo,
		ContractorInstructed:        req.ContractorInstructed,
		Types:                       req.Types,
		FinalRemarks:                req.FinalRemarks,
		MainImg:                     req.MainImg,
		ElectricityMeterImg:         req.ElectricityMeterImg,
		GasMeterImg:                 req.GasMeterImg,
		WaterMeterImg:               req.WaterMeterImg,
		SmokeAlarmFrontImg:          req.SmokeAlarmFrontImg,
		SmokeAlarmBackImg:           req.SmokeAlarmBackImg,
		COAlarmFrontImg:             req.COAlarmFrontImg,
		COAlarmBackImg:              req.COAlarmBackImg,
		HeatingSystemImg:            req.HeatingSystemImg,
		PropertyDetails:             details,
	}
}
