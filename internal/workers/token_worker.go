package workers

import (
	"context"
	"time"

	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/repositories"

	"gorm.io/gorm"
)

const defaultPurgeInterval = 6 * time.Hour

// TokenPurgeWorker periodically removes expired verification, password reset
// and refresh tokens. Expired rows are already unusable; the worker only keeps
// the token tables from growing without bound.
type TokenPurgeWorker struct {
	db               *gorm.DB
	verificationRepo repositories.VerificationTokenRepository
	resetRepo        repositories.PasswordResetTokenRepository
	refreshRepo      repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenPurgeWorker(db *gorm.DB) *TokenPurgeWorker {
	return &TokenPurgeWorker{
		db:               db,
		verificationRepo: repositories.NewVerificationTokenRepository(),
		resetRepo:        repositories.NewPasswordResetTokenRepository(),
		refreshRepo:      repositories.NewRefreshTokenRepository(),
		interval:         defaultPurgeInterval,
	}
}

// Run blocks until ctx is cancelled. One purge pass runs immediately on
// start, then every interval.
func (w *TokenPurgeWorker) Run(ctx context.Context) {
	logger.Info("Token purge worker started", "interval", w.interval.String())

	w.purge()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token purge worker stopped")
			return
		case <-ticker.C:
			w.purge()
		}
	}
}

func (w *TokenPurgeWorker) purge() {
	now := time.Now()

	verification, err := w.verificationRepo.DeleteExpired(w.db, now)
	if err != nil {
		logger.Error("Failed to purge expired verification tokens", "error", err)
	}

	reset, err := w.resetRepo.DeleteExpired(w.db, now)
	if err != nil {
		logger.Error("Failed to purge expired password reset tokens", "error", err)
	}

	refresh, err := w.refreshRepo.DeleteExpired(w.db, now)
	if err != nil {
		logger.Error("Failed to purge expired refresh tokens", "error", err)
	}

	if verification+reset+refresh > 0 {
		logger.Info("Purged expired tokens",
			"verification", verification,
			"password_reset", reset,
			"refresh", refresh,
		)
	}
}
