package services

import (
	"context"
	"fmt"
	"time"

	"fintrack_backend/internal/auth"
	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/email"
	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Token lifetimes for the email flows. These are fixed by product policy,
// not configuration: a verification link lives a day, a reset link an hour.
const (
	verificationTokenTTL = 24 * time.Hour
	passwordResetTTL     = 1 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error
	ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error
	ChangePassword(ctx context.Context, db *gorm.DB, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationTokenRepository
	resetRepo        repositories.PasswordResetTokenRepository
	refreshRepo      repositories.RefreshTokenRepository
	emailProvider    email.Provider
	tokenManager     *auth.TokenManager
	frontendBaseURL  string
	refreshTTL       time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationTokenRepository,
	resetRepo repositories.PasswordResetTokenRepository,
	refreshRepo repositories.RefreshTokenRepository,
	emailProvider email.Provider,
	tokenManager *auth.TokenManager,
	frontendBaseURL string,
	refreshTTLDays int,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		resetRepo:        resetRepo,
		refreshRepo:      refreshRepo,
		emailProvider:    emailProvider,
		tokenManager:     tokenManager,
		frontendBaseURL:  frontendBaseURL,
		refreshTTL:       time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.issueVerificationToken(ctx, db, user); err != nil {
		// The account exists; the user can request a fresh link later.
		logger.CtxWithError(ctx, "failed to issue verification token", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return buildUserResponse(user), nil
}

// Login rejects unknown emails and wrong passwords with the same error so
// the response does not reveal whether the account exists.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrUserNotVerified
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(db, user.ID, now); err != nil {
		logger.CtxWithError(ctx, "failed to update last login", err, "user_id", user.ID)
	}
	user.LastLogin = &now

	return s.buildLoginResponse(db, user)
}

// RefreshToken rotates the refresh token: the presented one is consumed and
// a new pair is issued. A replayed token therefore fails.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	row, err := s.refreshRepo.FindByToken(db, refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(row.ExpiresAt) {
		if err := s.refreshRepo.DeleteByToken(db, refreshToken); err != nil {
			logger.CtxWithError(ctx, "failed to delete expired refresh token", err)
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, row.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.refreshRepo.DeleteByToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildLoginResponse(db, user)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	if err := s.refreshRepo.DeleteByToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail consumes the verification token: marking the account verified
// and deleting the token happen in one transaction.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	row, err := s.verificationRepo.FindValid(db, token, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.MarkVerified(tx, row.UserID); err != nil {
			return err
		}
		// The delete must remove a row; a concurrent request that already
		// consumed the token rolls this transaction back.
		return s.verificationRepo.Delete(tx, row.ID)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "user_id", row.UserID)
	return nil
}

// RequestPasswordReset is a silent no-op for unknown emails so the endpoint
// cannot be used to probe which addresses are registered.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	row := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.resetRepo.Create(db, row); err != nil {
		return apperrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBaseURL, token)
	if err := s.emailProvider.SendPasswordReset(user.Email, resetURL); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
	}

	return nil
}

// ResetPassword consumes the reset token and revokes all sessions of the
// user; anyone holding an old refresh token is logged out.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	row, err := s.resetRepo.FindValid(db, token, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(tx, row.UserID, hash); err != nil {
			return err
		}
		if err := s.resetRepo.Delete(tx, row.ID); err != nil {
			return err
		}
		return s.refreshRepo.DeleteByUserID(tx, row.UserID)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", row.UserID)
	return nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.NewBadRequestError("Current password is incorrect")
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdatePassword(tx, userID, hash); err != nil {
			return err
		}
		// Other sessions die with the old password.
		return s.refreshRepo.DeleteByUserID(tx, userID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

func (s *AuthServiceImpl) issueVerificationToken(ctx context.Context, db *gorm.DB, user *models.User) error {
	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return err
	}

	row := &models.VerificationToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.verificationRepo.Create(db, row); err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.frontendBaseURL, token)
	if err := s.emailProvider.SendVerification(user.Email, verifyURL); err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err, "user_id", user.ID)
	}
	return nil
}

func (s *AuthServiceImpl) buildLoginResponse(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := s.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	row := &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.refreshRepo.Create(db, row); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokenManager.AccessTTL().Seconds()),
		User:         *buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Phone:           user.Phone,
		PANNumber:       user.PANNumber,
		AadharNumber:    user.AadharNumber,
		DateOfBirth:     user.DateOfBirth,
		Address:         user.Address,
		ProfileImageURL: user.ProfileImageURL,
		IsVerified:      user.IsVerified,
		LastLogin:       user.LastLogin,
		CreatedAt:       user.CreatedAt,
	}
}
