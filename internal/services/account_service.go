package services

import (
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/auth"
	"propel_backend/internal/models"
	"propel_backend/internal/repositories"
	"propel_backend/internal/services/dto"
	"propel_backend/pkg/apperrors"
)

// AccountService - администрирование учетных записей.
// Политика доступа: свои данные видит и меняет владелец, чужие - только
// администратор (auth.CanAccess).
type AccountService interface {
	GetAll(db *gorm.DB) ([]dto.AccountResponse, error)
	GetByID(db *gorm.DB, id string, principal auth.Principal) (*dto.AccountResponse, error)
	Create(db *gorm.DB, req *dto.CreateAccountRequest) (*dto.AccountResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateAccountRequest, principal auth.Principal) (*dto.AccountResponse, error)
	Delete(db *gorm.DB, id string, principal auth.Principal) error
	Approve(db *gorm.DB, id string) (*dto.AccountResponse, error)
	Reject(db *gorm.DB, id string) (*dto.AccountResponse, error)
}

type AccountServiceImpl struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountService {
	return &AccountServiceImpl{accountRepo: accountRepo}
}

func (s *AccountServiceImpl) GetAll(db *gorm.DB) ([]dto.AccountResponse, error) {
	accounts, _, err := s.accountRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *dto.NewAccountResponse(&accounts[i]))
	}
	return responses, nil
}

func (s *AccountServiceImpl) GetByID(db *gorm.DB, id string, principal auth.Principal) (*dto.AccountResponse, error) {
	if !auth.CanAccess(principal, id) {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	account, err := s.findAccount(db, id)
	if err != nil {
		return nil, err
	}
	return dto.NewAccountResponse(account), nil
}

// Create - админское создание аккаунта: сразу верифицирован и одобрен,
// письмо подтверждения не отправляется
func (s *AccountServiceImpl) Create(db *gorm.DB, req *dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	account := &models.Account{
		Title:        req.Title,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
		Status:       true,
		Verified:     &now,
	}

	if err := s.accountRepo.Create(db, account); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyTaken
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewAccountResponse(account), nil
}

func (s *AccountServiceImpl) Update(db *gorm.DB, id string, req *dto.UpdateAccountRequest, principal auth.Principal) (*dto.AccountResponse, error) {
	if !auth.CanAccess(principal, id) {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	// Роль и статус - только администратор
	if (req.Role != nil || req.Status != nil) && !principal.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can change role or status")
	}

	account, err := s.findAccount(db, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && models.NormalizeEmail(*req.Email) != account.Email {
		taken, err := s.accountRepo.ExistsByEmail(db, *req.Email)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyTaken
		}
		account.Email = *req.Email
	}

	if req.Title != nil {
		account.Title = *req.Title
	}
	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		account.PasswordHash = hash
	}
	if req.Role != nil {
		account.Role = models.Role(*req.Role)
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.CompanyName != nil {
		account.CompanyName = *req.CompanyName
	}
	if req.CompanyAddress != nil {
		account.CompanyAddress = *req.CompanyAddress
	}
	if req.CompanyEmail != nil {
		account.CompanyEmail = *req.CompanyEmail
	}
	if req.CompanyLogo != nil {
		account.CompanyLogo = *req.CompanyLogo
	}
	if req.MobileNumber != nil {
		account.MobileNumber = *req.MobileNumber
	}

	if err := s.accountRepo.Save(db, account); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewAccountResponse(account), nil
}

// Delete удаляет аккаунт; refresh-токены и инспекции уходят каскадом
func (s *AccountServiceImpl) Delete(db *gorm.DB, id string, principal auth.Principal) error {
	if !auth.CanAccess(principal, id) {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}

	if err := s.accountRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Approve открывает аккаунту доступ (status=true)
func (s *AccountServiceImpl) Approve(db *gorm.DB, id string) (*dto.AccountResponse, error) {
	return s.setStatus(db, id, true)
}

// Reject закрывает аккаунту доступ (status=false)
func (s *AccountServiceImpl) Reject(db *gorm.DB, id string) (*dto.AccountResponse, error) {
	return s.setStatus(db, id, false)
}

func (s *AccountServiceImpl) setStatus(db *gorm.DB, id string, status bool) (*dto.AccountResponse, error) {
	account, err := s.findAccount(db, id)
	if err != nil {
		return nil, err
	}

	account.Status = status
	if err := s.accountRepo.Save(db, account); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewAccountResponse(account), nil
}

func (s *AccountServiceImpl) findAccount(db *gorm.DB, id string) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return account, nil
}
