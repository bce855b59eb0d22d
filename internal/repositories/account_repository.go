package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/models"
)

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден в БД
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists возвращается при нарушении уникальности email
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository определяет интерфейс для операций с аккаунтами.
// Все методы принимают *gorm.DB первым аргументом: вызывающий решает,
// пул это или транзакция.
type AccountRepository interface {
	// Create создает аккаунт
	Create(db *gorm.DB, account *models.Account) error

	// FindByEmail находит аккаунт по email (включая хеш пароля).
	// Email сравнивается без учета регистра.
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)

	// FindByID находит аккаунт по id
	FindByID(db *gorm.DB, id string) (*models.Account, error)

	// FindByVerificationToken находит аккаунт по токену верификации email
	FindByVerificationToken(db *gorm.DB, token string) (*models.Account, error)

	// FindByValidResetToken находит аккаунт по reset-токену,
	// срок действия которого строго позже now
	FindByValidResetToken(db *gorm.DB, token string, now time.Time) (*models.Account, error)

	// Count возвращает общее число аккаунтов
	Count(db *gorm.DB) (int64, error)

	// ExistsByEmail проверяет занятость email
	ExistsByEmail(db *gorm.DB, email string) (bool, error)

	// Save сохраняет изменения аккаунта
	Save(db *gorm.DB, account *models.Account) error

	// Delete удаляет аккаунт; токены и инспекции уходят каскадом
	Delete(db *gorm.DB, id string) error

	// FindAll возвращает все аккаунты и их количество
	FindAll(db *gorm.DB) ([]models.Account, int64, error)
}

type accountRepository struct{}

// NewAccountRepository создает новый экземпляр AccountRepository
func NewAccountRepository() AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(db *gorm.DB, account *models.Account) error {
	account.Email = models.NormalizeEmail(account.Email)
	if err := db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *accountRepository) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	if err := db.Where("email = ?", models.NormalizeEmail(email)).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByID(db *gorm.DB, id string) (*models.Account, error) {
	var account models.Account
	if err := db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByVerificationToken(db *gorm.DB, token string) (*models.Account, error) {
	var account models.Account
	err := db.Where("verification_token = ? AND verification_token <> ''", token).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByValidResetToken(db *gorm.DB, token string, now time.Time) (*models.Account, error) {
	var account models.Account
	err := db.Where("reset_token = ? AND reset_token <> '' AND reset_token_expires > ?", token, now).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Account{}).Count(&count).Error
	return count, err
}

func (r *accountRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Account{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) Save(db *gorm.DB, account *models.Account) error {
	account.Email = models.NormalizeEmail(account.Email)
	return db.Save(account).Error
}

func (r *accountRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) FindAll(db *gorm.DB) ([]models.Account, int64, error) {
	var accounts []models.Account
	var count int64

	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, count, nil
}
