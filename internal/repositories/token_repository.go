package repositories

import (
	"errors"
	"time"

	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

// ErrTokenNotFound covers both "no such token" and "token expired": the two
// cases are indistinguishable to callers so a stolen token string reveals
// nothing about why it was rejected.
var ErrTokenNotFound = errors.New("token not found or expired")

// The repositories below are deliberately separate per token kind. A
// verification token handed to the reset path misses at the table level, not
// at a type-column comparison.

type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.VerificationToken) error
	FindValid(db *gorm.DB, token string, now time.Time) (*models.VerificationToken, error)
	Delete(db *gorm.DB, id string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type PasswordResetTokenRepository interface {
	Create(db *gorm.DB, token *models.PasswordResetToken) error
	FindValid(db *gorm.DB, token string, now time.Time) (*models.PasswordResetToken, error)
	Delete(db *gorm.DB, id string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error
	FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	DeleteByToken(db *gorm.DB, token string) error
	DeleteByUserID(db *gorm.DB, userID string) error
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type VerificationTokenRepositoryImpl struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &VerificationTokenRepositoryImpl{}
}

func (r *VerificationTokenRepositoryImpl) Create(db *gorm.DB, token *models.VerificationToken) error {
	return db.Create(token).Error
}

func (r *VerificationTokenRepositoryImpl) FindValid(db *gorm.DB, token string, now time.Time) (*models.VerificationToken, error) {
	var row models.VerificationToken
	err := db.Where("token = ? AND expires_at > ?", token, now).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Delete reports ErrTokenNotFound when the row is already gone, so a token
// racing through two consumers is only honored once.
func (r *VerificationTokenRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.VerificationToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *VerificationTokenRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.VerificationToken{})
	return result.RowsAffected, result.Error
}

type PasswordResetTokenRepositoryImpl struct{}

func NewPasswordResetTokenRepository() PasswordResetTokenRepository {
	return &PasswordResetTokenRepositoryImpl{}
}

func (r *PasswordResetTokenRepositoryImpl) Create(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *PasswordResetTokenRepositoryImpl) FindValid(db *gorm.DB, token string, now time.Time) (*models.PasswordResetToken, error) {
	var row models.PasswordResetToken
	err := db.Where("token = ? AND expires_at > ?", token, now).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PasswordResetTokenRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *PasswordResetTokenRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

type RefreshTokenRepositoryImpl struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{}
}

func (r *RefreshTokenRepositoryImpl) Create(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *RefreshTokenRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var row models.RefreshToken
	err := db.Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *RefreshTokenRepositoryImpl) DeleteByToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
