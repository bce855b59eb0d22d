package helpers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"propel_backend/internal/auth"
	"propel_backend/internal/models"
)

// DefaultPassword - пароль всех фикстурных аккаунтов
const DefaultPassword = "Password123!"

// AccountFixture описывает создаваемый тестовый аккаунт.
// Нулевое значение дает подтвержденного одобренного User-а.
type AccountFixture struct {
	Email      string
	Role       models.Role
	Unverified bool
	Pending    bool
}

// UniqueEmail генерирует email, не конфликтующий с данными
// предыдущих прогонов: тестовая БД между запусками не чистится
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@test.local", prefix, time.Now().UnixNano())
}

// CreateAccount пишет аккаунт прямо в БД, минуя HTTP-регистрацию
func (ts *TestServer) CreateAccount(t *testing.T, fixture AccountFixture) *models.Account {
	if fixture.Email == "" {
		fixture.Email = UniqueEmail("account")
	}
	if fixture.Role == "" {
		fixture.Role = models.RoleUser
	}

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		t.Fatalf("Не удалось захешировать пароль фикстуры: %v", err)
	}

	account := &models.Account{
		FirstName:    "Test",
		LastName:     "Account",
		Email:        models.NormalizeEmail(fixture.Email),
		PasswordHash: hash,
		Role:         fixture.Role,
		Status:       !fixture.Pending,
		AcceptTerms:  true,
	}
	if fixture.Unverified {
		token, err := auth.NewOpaqueToken()
		if err != nil {
			t.Fatalf("Не удалось сгенерировать verification token: %v", err)
		}
		account.VerificationToken = token
	} else {
		now := time.Now()
		account.Verified = &now
	}

	if err := ts.DB.Create(account).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый аккаунт: %v", err)
	}
	return account
}

// LoginAccount логинится через /accounts/authenticate и возвращает
// access-токен вместе с refresh-кукой
func (ts *TestServer) LoginAccount(t *testing.T, email string) (string, *http.Cookie) {
	res, body := ts.SendRequest(t, http.MethodPost, "/accounts/authenticate", "", map[string]string{
		"email":    email,
		"password": DefaultPassword,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Логин фикстуры %s вернул %d: %s", email, res.StatusCode, body)
	}

	var parsed struct {
		JWTToken string `json:"jwtToken"`
	}
	mustUnmarshal(t, body, &parsed)
	if parsed.JWTToken == "" {
		t.Fatalf("Ответ логина без jwtToken: %s", body)
	}

	refreshCookie := ExtractCookie(res, "refreshToken")
	if refreshCookie == nil {
		t.Fatalf("Ответ логина без refreshToken cookie")
	}
	return parsed.JWTToken, refreshCookie
}

// CreateAndLoginAccount - аккаунт + логин одним вызовом
func (ts *TestServer) CreateAndLoginAccount(t *testing.T, fixture AccountFixture) (*models.Account, string) {
	account := ts.CreateAccount(t, fixture)
	token, _ := ts.LoginAccount(t, account.Email)
	return account, token
}

// CreateProperty пишет запись об инспекции прямо в БД
func (ts *TestServer) CreateProperty(t *testing.T, accountID, address string) *models.Property {
	property := &models.Property{
		AccountID:       accountID,
		PropertyAddress: address,
		TenantName:      "Test Tenant",
		InspectorName:   "Test Inspector",
		PropertyDetails: []models.PropertyDetail{
			{Name: "Kitchen", Walls: "Good"},
		},
	}
	if err := ts.DB.Create(property).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую инспекцию: %v", err)
	}
	return property
}
