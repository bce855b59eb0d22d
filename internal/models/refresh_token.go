package models

import "time"

// RefreshToken - одна выданная сессионная "кредитка".
//
// Запись мутирует ровно один раз: либо ротация (Revoked + ReplacedByToken),
// либо явный отзыв (Revoked). После этого хранится бессрочно для аудита.
// Цепочка ReplacedByToken описывает одну непрерывную сессию: живой токен
// всегда ровно один - в голове цепочки.
type RefreshToken struct {
	BaseModel
	AccountID string  `gorm:"type:varchar(36);index;not null"`
	Account   Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`

	// Token - непрозрачная случайная строка, ключ поиска
	Token   string    `gorm:"uniqueIndex;size:191;not null"`
	Expires time.Time `gorm:"not null"`

	CreatedByIP string

	Revoked     *time.Time `gorm:"index"`
	RevokedByIP string
	// Прямая ссылка на токен-преемник; только для обхода цепочки и аудита
	ReplacedByToken string
}

// IsExpired сообщает, истек ли токен на момент now
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// IsRevoked сообщает, был ли токен отозван
func (t *RefreshToken) IsRevoked() bool {
	return t.Revoked != nil
}

// IsActive - токен жив: не отозван и не истек
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
