package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/models"
)

var (
	// ErrRefreshTokenNotFound возвращается, когда refresh-токен не найден в БД
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository определяет интерфейс для операций с refresh-токенами.
// Токены никогда не удаляются при отзыве - только помечаются (аудит);
// физическое удаление происходит лишь каскадом при удалении аккаунта.
type RefreshTokenRepository interface {
	// Create создает новую запись о refresh-токене
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindByToken находит refresh-токен по его строковому значению
	FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error)

	// Save сохраняет изменения токена (отзыв, ссылка на преемника)
	Save(db *gorm.DB, token *models.RefreshToken) error

	// RevokeAllByAccountID отзывает все живые токены аккаунта
	// (используется при сбросе пароля)
	RevokeAllByAccountID(db *gorm.DB, accountID, ip string, now time.Time) error

	// FindByAccountID возвращает все токены аккаунта (для аудита)
	FindByAccountID(db *gorm.DB, accountID string) ([]models.RefreshToken, error)
}

type refreshTokenRepository struct{}

// NewRefreshTokenRepository создает новый экземпляр RefreshTokenRepository
func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) Save(db *gorm.DB, token *models.RefreshToken) error {
	return db.Save(token).Error
}

func (r *refreshTokenRepository) RevokeAllByAccountID(db *gorm.DB, accountID, ip string, now time.Time) error {
	return db.Model(&models.RefreshToken{}).
		Where("account_id = ? AND revoked IS NULL", accountID).
		Updates(map[string]interface{}{
			"revoked":       now,
			"revoked_by_ip": ip,
		}).Error
}

func (r *refreshTokenRepository) FindByAccountID(db *gorm.DB, accountID string) ([]models.RefreshToken, error) {
	var tokens []models.RefreshToken
	err := db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}
