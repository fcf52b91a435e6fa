package apperrors

import "net/http"

// Predefined domain errors shared across services. Services return these
// directly; handlers translate them to HTTP via HandleError.
var (
	// auth domain
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already exists", http.StatusConflict)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusBadRequest)
	ErrWeakPassword       = New(CodeWeakPassword, "auth", "Password must be at least 8 characters long", http.StatusBadRequest)
	ErrUserNotVerified    = New(CodeForbidden, "auth", "Email not verified. Please verify your email first.", http.StatusForbidden)
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

	// finance domain
	ErrTransactionNotFound    = New(CodeNotFound, "transaction", "Transaction not found", http.StatusNotFound)
	ErrCategoryNotFound       = New(CodeNotFound, "transaction", "Category not found", http.StatusNotFound)
	ErrBankAccountNotFound    = New(CodeNotFound, "transaction", "Bank account not found", http.StatusNotFound)
	ErrInvestmentNotFound     = New(CodeNotFound, "investment", "Investment not found", http.StatusNotFound)
	ErrInvestmentTypeNotFound = New(CodeNotFound, "investment", "Investment type not found", http.StatusNotFound)
	ErrTaxReturnNotFound      = New(CodeNotFound, "tax", "Tax return not found", http.StatusNotFound)
	ErrDeductionNotFound      = New(CodeNotFound, "tax", "Tax deduction not found", http.StatusNotFound)
	ErrDocumentNotFound       = New(CodeNotFound, "tax", "Document not found", http.StatusNotFound)
)

// ErrNotFound wraps a repository not-found error as a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation as a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation reports a business rule violation as a 400.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}
