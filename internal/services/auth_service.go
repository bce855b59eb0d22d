package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"propel_backend/internal/auth"
	"propel_backend/internal/config"
	"propel_backend/internal/logger"
	"propel_backend/internal/metrics"
	"propel_backend/internal/models"
	"propel_backend/internal/queue"
	"propel_backend/internal/repositories"
	"propel_backend/internal/services/dto"
	"propel_backend/pkg/apperrors"
)

// AuthService - жизненный цикл сессий и учетных данных.
// Все методы принимают *gorm.DB: хендлер передает пул или транзакцию.
type AuthService interface {
	Authenticate(db *gorm.DB, req *dto.AuthenticateRequest, ip string) (*dto.AuthenticateResponse, string, error)
	Rotate(db *gorm.DB, token, ip string) (*dto.AuthenticateResponse, string, error)
	Revoke(db *gorm.DB, token, ip string, principal *auth.Principal) error
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(db *gorm.DB, token string) error
	ForgotPassword(db *gorm.DB, email string) error
	ValidateResetToken(db *gorm.DB, token string) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest, ip string) error
}

type AuthServiceImpl struct {
	cfg         *config.Config
	accountRepo repositories.AccountRepository
	tokenRepo   repositories.RefreshTokenRepository
	dispatcher  queue.Dispatcher
}

func NewAuthService(
	cfg *config.Config,
	accountRepo repositories.AccountRepository,
	tokenRepo repositories.RefreshTokenRepository,
	dispatcher queue.Dispatcher,
) AuthService {
	return &AuthServiceImpl{
		cfg:         cfg,
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		dispatcher:  dispatcher,
	}
}

// Authenticate - логин по email и паролю.
// Неизвестный email, неверный пароль, неподтвержденный или не одобренный
// аккаунт дают одну и ту же ошибку: существование аккаунта не раскрывается.
func (s *AuthServiceImpl) Authenticate(db *gorm.DB, req *dto.AuthenticateRequest, ip string) (*dto.AuthenticateResponse, string, error) {
	account, err := s.accountRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.InternalError(err)
	}

	if !account.IsVerified() || !account.Status ||
		!auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, "", apperrors.ErrInvalidCredentials
	}

	refreshToken, err := s.issueRefreshToken(db, account.ID, ip)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	response, err := s.buildAuthResponse(account)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return response, refreshToken.Token, nil
}

// Rotate - обмен живого refresh-токена на преемника.
// Отзыв старого и создание нового - одна транзакция: наблюдатель видит
// либо оба изменения, либо ни одного.
func (s *AuthServiceImpl) Rotate(db *gorm.DB, tokenStr, ip string) (*dto.AuthenticateResponse, string, error) {
	var account *models.Account
	var newToken *models.RefreshToken
	var reuse bool

	err := db.Transaction(func(tx *gorm.DB) error {
		oldToken, err := s.tokenRepo.FindByToken(tx, tokenStr)
		if err != nil {
			if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return apperrors.ErrInvalidToken
			}
			return apperrors.InternalError(err)
		}

		now := time.Now().UTC()

		// Повторное предъявление отозванного токена - признак кражи:
		// гасим всю цепочку преемников, живой токен в ее голове умирает.
		// Из замыкания возвращаем nil: ошибка откатила бы сам отзыв.
		if oldToken.IsRevoked() {
			metrics.TokenReuseDetected.Inc()
			logger.Warn("refresh token reuse detected, revoking descendants",
				"account_id", oldToken.AccountID, "ip", ip)
			if err := s.revokeDescendants(tx, oldToken, ip, now); err != nil {
				return apperrors.InternalError(err)
			}
			reuse = true
			return nil
		}

		if oldToken.IsExpired(now) {
			return apperrors.ErrInvalidToken
		}

		account, err = s.accountRepo.FindByID(tx, oldToken.AccountID)
		if err != nil {
			return apperrors.InternalError(err)
		}

		newToken, err = s.issueRefreshToken(tx, account.ID, ip)
		if err != nil {
			return apperrors.InternalError(err)
		}

		oldToken.Revoked = &now
		oldToken.RevokedByIP = ip
		oldToken.ReplacedByToken = newToken.Token
		if err := s.tokenRepo.Save(tx, oldToken); err != nil {
			return apperrors.InternalError(err)
		}

		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if reuse {
		return nil, "", apperrors.NewTokenReuse(tokenStr)
	}

	response, err := s.buildAuthResponse(account)
	if err != nil {
		return nil, "", err
	}

	metrics.TokenRotations.Inc()
	return response, newToken.Token, nil
}

// Revoke - явный отзыв refresh-токена.
// Отозвать можно только свой токен; администратор - любой.
func (s *AuthServiceImpl) Revoke(db *gorm.DB, tokenStr, ip string, principal *auth.Principal) error {
	token, err := s.tokenRepo.FindByToken(db, tokenStr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	if principal == nil || !auth.CanAccess(*principal, token.AccountID) {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}

	now := time.Now().UTC()
	if !token.IsActive(now) {
		return apperrors.ErrInvalidToken
	}

	token.Revoked = &now
	token.RevokedByIP = ip
	if err := s.tokenRepo.Save(db, token); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// Register - самостоятельная регистрация инспектора.
// Самый первый аккаунт в системе становится Admin и сразу одобрен;
// проверка счетчика и вставка идут в одной транзакции, чтобы два
// одновременных "первых" не получили Admin оба.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var account *models.Account
	var duplicate bool

	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.accountRepo.ExistsByEmail(tx, req.Email)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if exists {
			duplicate = true
			return nil
		}

		count, err := s.accountRepo.Count(tx)
		if err != nil {
			return apperrors.InternalError(err)
		}

		role := models.RoleUser
		status := false
		if count == 0 {
			role = models.RoleAdmin
			status = true
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return apperrors.InternalError(err)
		}

		verificationToken, err := auth.NewOpaqueToken()
		if err != nil {
			return apperrors.InternalError(err)
		}

		account = &models.Account{
			Title:             req.Title,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			PasswordHash:      hash,
			Role:              role,
			Status:            status,
			VerificationToken: verificationToken,
			AcceptTerms:       req.AcceptTerms,
			CompanyName:       req.CompanyName,
			CompanyAddress:    req.CompanyAddress,
			CompanyEmail:      req.CompanyEmail,
			CompanyLogo:       req.CompanyLogo,
			MobileNumber:      req.MobileNumber,
		}

		if err := s.accountRepo.Create(tx, account); err != nil {
			// Гонка с параллельной регистрацией того же email
			if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
				duplicate = true
				account = nil
				return nil
			}
			return apperrors.InternalError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Занятый email - не ошибка: нейтральный исход против перебора
	if duplicate {
		return &dto.RegisterResponse{
			Status:  false,
			Message: "Registration received - please check your email for further instructions",
		}, nil
	}

	// Письмо уходит после коммита; его провал регистрацию не откатывает
	s.dispatchEmail(queue.EmailJob{
		Kind:  queue.EmailKindVerification,
		To:    account.Email,
		Token: account.VerificationToken,
	})

	metrics.Registrations.Inc()
	return &dto.RegisterResponse{
		Status:  true,
		Message: "Registration successful, please check your email for verification instructions",
	}, nil
}

// VerifyEmail - подтверждение email по токену из письма.
// Повторный вызов падает: токен очищается при первом успехе.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	account, err := s.accountRepo.FindByVerificationToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrVerificationFailed
		}
		return apperrors.InternalError(err)
	}

	now := time.Now().UTC()
	account.Verified = &now
	account.VerificationToken = ""

	if err := s.accountRepo.Save(db, account); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// ForgotPassword - запрос сброса пароля.
// Неизвестный email молча проглатывается: ответ всегда одинаковый.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, email string) error {
	account, err := s.accountRepo.FindByEmail(db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	resetToken, err := auth.NewOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	expires := time.Now().UTC().Add(time.Duration(s.cfg.JWT.ResetTTLMinutes) * time.Minute)
	account.ResetToken = resetToken
	account.ResetTokenExpires = &expires

	if err := s.accountRepo.Save(db, account); err != nil {
		return apperrors.InternalError(err)
	}

	s.dispatchEmail(queue.EmailJob{
		Kind:  queue.EmailKindPasswordReset,
		To:    account.Email,
		Token: account.ResetToken,
	})

	return nil
}

// ValidateResetToken - проверка reset-токена без побочных эффектов
func (s *AuthServiceImpl) ValidateResetToken(db *gorm.DB, token string) error {
	_, err := s.accountRepo.FindByValidResetToken(db, token, time.Now().UTC())
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// ResetPassword - установка нового пароля по reset-токену.
// Все живые refresh-токены аккаунта отзываются: старые сессии умирают.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest, ip string) error {
	now := time.Now().UTC()

	account, err := s.accountRepo.FindByValidResetToken(db, req.Token, now)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		account.PasswordHash = hash
		account.PasswordReset = &now
		account.ResetToken = ""
		account.ResetTokenExpires = nil

		if err := s.accountRepo.Save(tx, account); err != nil {
			return apperrors.InternalError(err)
		}

		if err := s.tokenRepo.RevokeAllByAccountID(tx, account.ID, ip, now); err != nil {
			return apperrors.InternalError(err)
		}

		return nil
	})
}

// --- Helpers ---

// issueRefreshToken создает и сохраняет новый refresh-токен
func (s *AuthServiceImpl) issueRefreshToken(db *gorm.DB, accountID, ip string) (*models.RefreshToken, error) {
	tokenStr, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{
		AccountID:   accountID,
		Token:       tokenStr,
		Expires:     time.Now().UTC().Add(time.Duration(s.cfg.JWT.RefreshTTLDays) * 24 * time.Hour),
		CreatedByIP: ip,
	}

	if err := s.tokenRepo.Create(db, token); err != nil {
		return nil, err
	}

	return token, nil
}

// revokeDescendants гасит цепочку преемников, начиная с переданного
// токена. Цепочка конечна (каждый токен мутирует один раз), но на
// случай поврежденных данных обход ограничен.
func (s *AuthServiceImpl) revokeDescendants(db *gorm.DB, token *models.RefreshToken, ip string, now time.Time) error {
	const maxChain = 1000

	current := token
	for i := 0; i < maxChain && current.ReplacedByToken != ""; i++ {
		next, err := s.tokenRepo.FindByToken(db, current.ReplacedByToken)
		if err != nil {
			if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
				return nil
			}
			return err
		}

		if !next.IsRevoked() {
			next.Revoked = &now
			next.RevokedByIP = ip
			if err := s.tokenRepo.Save(db, next); err != nil {
				return err
			}
		}

		current = next
	}

	return nil
}

// buildAuthResponse собирает публичный ответ с подписанным access-токеном
func (s *AuthServiceImpl) buildAuthResponse(account *models.Account) (*dto.AuthenticateResponse, error) {
	jwtToken, err := auth.GenerateToken(
		account.ID,
		string(account.Role),
		s.cfg.JWT.Secret,
		time.Duration(s.cfg.JWT.AccessTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthenticateResponse{
		AccountResponse: dto.NewAccountResponse(account),
		JWTToken:        jwtToken,
	}, nil
}

// dispatchEmail отдает задание диспетчеру. Ошибка только логируется.
func (s *AuthServiceImpl) dispatchEmail(job queue.EmailJob) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(context.Background(), job); err != nil {
		logger.Error("failed to dispatch email job", "kind", job.Kind, "error", err)
		return
	}
	metrics.EmailsDispatched.WithLabelValues(job.Kind).Inc()
}
