package dto

import (
	"time"

	"propel_backend/internal/models"
)

// AuthenticateRequest - тело POST /accounts/authenticate
type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse - публичное представление аккаунта.
// Хеш пароля и токены сюда не попадают никогда.
type AccountResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     bool      `json:"status"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	IsVerified bool      `json:"isVerified"`

	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
	CompanyLogo    string `json:"company_logo,omitempty"`
	MobileNumber   string `json:"mobile_number,omitempty"`
}

// NewAccountResponse строит публичное представление из модели
func NewAccountResponse(a *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Title:          a.Title,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		Role:           string(a.Role),
		Status:         a.Status,
		Created:        a.CreatedAt,
		Updated:        a.UpdatedAt,
		IsVerified:     a.IsVerified(),
		CompanyName:    a.CompanyName,
		CompanyAddress: a.CompanyAddress,
		CompanyEmail:   a.CompanyEmail,
		CompanyLogo:    a.CompanyLogo,
		MobileNumber:   a.MobileNumber,
	}
}

// AuthenticateResponse - ответ authenticate и refresh-token.
// Сам refresh-токен уходит только в HTTP-only cookie.
type AuthenticateResponse struct {
	*AccountResponse
	JWTToken string `json:"jwtToken"`
}

// RegisterRequest - тело POST /accounts/register
type RegisterRequest struct {
	Title           string `json:"title"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"acceptTerms" validate:"required"`

	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email" validate:"omitempty,email"`
	CompanyLogo    string `json:"company_logo"`
	MobileNumber   string `json:"mobile_number"`
}

// RegisterResponse - исход регистрации. Повторная регистрация занятого
// email - НЕ ошибка: status=false и нейтральное сообщение, чтобы
// нельзя было перебором выяснять, кто зарегистрирован.
type RegisterResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// RevokeTokenRequest - тело POST /accounts/revoke-token.
// Токен опционален: при пустом теле берется из cookie.
type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest - параметры GET /accounts/forgot-password
type ForgotPasswordRequest struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

// ValidateResetTokenRequest - тело POST /accounts/validate-reset-token
type ValidateResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ResetPasswordRequest - тело POST /accounts/reset-password
type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}
