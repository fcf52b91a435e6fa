package handlers

import (
	"fintrack_backend/internal/services"
	"fintrack_backend/internal/validator"
)

// AppHandlers holds all HTTP handlers of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	TransactionHandler *TransactionHandler
	InvestmentHandler  *InvestmentHandler
	TaxHandler         *TaxHandler
	DocumentHandler    *DocumentHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, container.AuthService),
		UserHandler:        NewUserHandler(base, container.UserService),
		TransactionHandler: NewTransactionHandler(base, container.TransactionService),
		InvestmentHandler:  NewInvestmentHandler(base, container.InvestmentService),
		TaxHandler:         NewTaxHandler(base, container.TaxService),
		DocumentHandler:    NewDocumentHandler(base, container.DocumentService),
	}
}
