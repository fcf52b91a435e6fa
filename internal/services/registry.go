package services

import (
	"fintrack_backend/internal/auth"
	"fintrack_backend/internal/config"
	"fintrack_backend/internal/email"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/storage"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	TransactionService TransactionService
	InvestmentService  InvestmentService
	TaxService         TaxService
	DocumentService    DocumentService
}

// NewServiceContainer wires repositories, storage and email into services.
func NewServiceContainer(
	cfg *config.Config,
	tokenManager *auth.TokenManager,
	emailProvider email.Provider,
	files storage.Storage,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	verificationRepo := repositories.NewVerificationTokenRepository()
	resetRepo := repositories.NewPasswordResetTokenRepository()
	refreshRepo := repositories.NewRefreshTokenRepository()
	txnRepo := repositories.NewTransactionRepository()
	bankRepo := repositories.NewBankAccountRepository()
	investRepo := repositories.NewInvestmentRepository()
	taxRepo := repositories.NewTaxRepository()
	docRepo := repositories.NewDocumentRepository()

	return &ServiceContainer{
		AuthService: NewAuthService(
			userRepo, verificationRepo, resetRepo, refreshRepo,
			emailProvider, tokenManager,
			cfg.Frontend.BaseURL, cfg.JWT.RefreshTTLDays,
		),
		UserService:        NewUserService(userRepo, files),
		TransactionService: NewTransactionService(txnRepo, bankRepo, files),
		InvestmentService:  NewInvestmentService(investRepo),
		TaxService:         NewTaxService(taxRepo, docRepo, txnRepo, investRepo),
		DocumentService:    NewDocumentService(docRepo, files, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
	}
}
