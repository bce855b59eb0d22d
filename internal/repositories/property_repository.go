package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/models"
)

var (
	// ErrPropertyNotFound возвращается, когда запись об инспекции не найдена
	ErrPropertyNotFound = errors.New("property not found")
)

// PropertyRepository определяет интерфейс для записей об инспекциях
type PropertyRepository interface {
	// Create создает запись вместе с вложенными комнатами и фото
	Create(db *gorm.DB, property *models.Property) error

	// FindByID находит запись с полной вложенностью
	FindByID(db *gorm.DB, id string) (*models.Property, error)

	// FindAll возвращает все записи и их количество
	FindAll(db *gorm.DB) ([]models.Property, int64, error)

	// FindByAccountID возвращает записи одного аккаунта
	FindByAccountID(db *gorm.DB, accountID string) ([]models.Property, int64, error)

	// Save сохраняет изменения записи
	Save(db *gorm.DB, property *models.Property) error

	// Delete удаляет запись; комнаты и фото уходят каскадом
	Delete(db *gorm.DB, id string) error

	// DeleteOlderThan удаляет записи, созданные раньше cutoff.
	// Возвращает количество удаленных (retention sweep).
	DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type propertyRepository struct{}

// NewPropertyRepository создает новый экземпляр PropertyRepository
func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{}
}

func (r *propertyRepository) Create(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

func (r *propertyRepository) FindByID(db *gorm.DB, id string) (*models.Property, error) {
	var property models.Property
	err := db.Preload("PropertyDetails.PropertyImages").
		Preload("PropertyDetails").
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindAll(db *gorm.DB) ([]models.Property, int64, error) {
	var properties []models.Property
	var count int64

	if err := db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Preload("PropertyDetails.PropertyImages").
		Preload("PropertyDetails").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, count, nil
}

func (r *propertyRepository) FindByAccountID(db *gorm.DB, accountID string) ([]models.Property, int64, error) {
	var properties []models.Property
	var count int64

	if err := db.Model(&models.Property{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Preload("PropertyDetails.PropertyImages").
		Preload("PropertyDetails").
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}
	return properties, count, nil
}

func (r *propertyRepository) Save(db *gorm.DB, property *models.Property) error {
	return db.Save(property).Error
}

func (r *propertyRepository) Delete(db *gorm.DB, id string) error {
	// Select(clause.Associations) недоступен без загрузки, поэтому
	// полагаемся на каскадные constraints, объявленные в моделях
	result := db.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) DeleteOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("created_at < ?", cutoff).Delete(&models.Property{})
	return result.RowsAffected, result.Error
}
