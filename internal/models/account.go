package models

import (
	"strings"
	"time"
)

// Role - роль аккаунта. Фиксируется при создании:
// самый первый аккаунт в системе становится Admin, остальные - User.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Account - учетная запись инспектора.
//
// Инвариант верификации: у аккаунта либо стоит VerificationToken
// (письмо отправлено, email не подтвержден), либо Verified
// (подтвержден, токен очищен). Оба поля одновременно не несут смысла.
type Account struct {
	BaseModel
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	// Хеш пароля никогда не сериализуется клиенту
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"type:varchar(20);not null"`
	// Status - админский гейт: false до одобрения администратором
	Status bool `json:"status"`

	Verified          *time.Time `json:"verified,omitempty"`
	VerificationToken string     `json:"-" gorm:"index;size:191"`

	ResetToken        string     `json:"-" gorm:"index;size:191"`
	ResetTokenExpires *time.Time `json:"-"`
	PasswordReset     *time.Time `json:"-"`

	AcceptTerms bool `json:"acceptTerms"`

	// Данные компании из регистрационной формы
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyLogo    string `json:"company_logo"`
	MobileNumber   string `json:"mobile_number"`

	// Relations. Каскад: удаление аккаунта сносит его токены и инспекции.
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Properties    []Property     `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// IsVerified сообщает, подтвержден ли email
func (a *Account) IsVerified() bool {
	return a.Verified != nil
}

// NormalizeEmail приводит email к каноничному виду для сравнения
// без учета регистра: хранится и ищется всегда в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
