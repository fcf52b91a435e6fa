package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Amount             decimal.Decimal  `json:"amount" validate:"required"`
	TransactionType    string           `json:"transaction_type" validate:"required,oneof=debit credit"`
	TransactionDate    time.Time        `json:"transaction_date" validate:"required"`
	Description        string           `json:"description" validate:"omitempty,max=500"`
	CategoryID         *string          `json:"category_id" validate:"omitempty,uuid"`
	BankAccountID      *string          `json:"bank_account_id" validate:"omitempty,uuid"`
	PaymentMethod      string           `json:"payment_method" validate:"omitempty,max=50"`
	UPIID              string           `json:"upi_id" validate:"omitempty,max=100"`
	IsRecurring        bool             `json:"is_recurring"`
	RecurringFrequency string           `json:"recurring_frequency" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	IsTaxDeductible    bool             `json:"is_tax_deductible"`
	TaxSection         string           `json:"tax_section" validate:"omitempty,max=10"`
	GSTApplicable      bool             `json:"gst_applicable"`
	GSTAmount          *decimal.Decimal `json:"gst_amount"`
	HSNSACCode         string           `json:"hsn_sac_code" validate:"omitempty,max=20"`
	Notes              string           `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateTransactionRequest is a partial update; nil fields keep their
// current values.
type UpdateTransactionRequest struct {
	Amount             *decimal.Decimal `json:"amount"`
	TransactionType    *string          `json:"transaction_type" validate:"omitempty,oneof=debit credit"`
	TransactionDate    *time.Time       `json:"transaction_date"`
	Description        *string          `json:"description" validate:"omitempty,max=500"`
	CategoryID         *string          `json:"category_id" validate:"omitempty,uuid"`
	BankAccountID      *string          `json:"bank_account_id" validate:"omitempty,uuid"`
	PaymentMethod      *string          `json:"payment_method" validate:"omitempty,max=50"`
	UPIID              *string          `json:"upi_id" validate:"omitempty,max=100"`
	IsRecurring        *bool            `json:"is_recurring"`
	RecurringFrequency *string          `json:"recurring_frequency" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	IsTaxDeductible    *bool            `json:"is_tax_deductible"`
	TaxSection         *string          `json:"tax_section" validate:"omitempty,max=10"`
	GSTApplicable      *bool            `json:"gst_applicable"`
	GSTAmount          *decimal.Decimal `json:"gst_amount"`
	HSNSACCode         *string          `json:"hsn_sac_code" validate:"omitempty,max=20"`
	Notes              *string          `json:"notes" validate:"omitempty,max=1000"`
}

type TransactionListQuery struct {
	StartDate       string `form:"start_date"`
	EndDate         string `form:"end_date"`
	MinAmount       string `form:"min_amount"`
	MaxAmount       string `form:"max_amount"`
	CategoryID      string `form:"category_id"`
	TransactionType string `form:"transaction_type" validate:"omitempty,oneof=debit credit"`
	IsTaxDeductible *bool  `form:"is_tax_deductible"`
	GSTApplicable   *bool  `form:"gst_applicable"`
	Search          string `form:"search"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
}

type TransactionResponse struct {
	ID                 string            `json:"id"`
	Amount             decimal.Decimal   `json:"amount"`
	TransactionType    string            `json:"transaction_type"`
	TransactionDate    time.Time         `json:"transaction_date"`
	Description        string            `json:"description,omitempty"`
	CategoryID         *string           `json:"category_id,omitempty"`
	Category           *CategoryResponse `json:"category,omitempty"`
	BankAccountID      *string           `json:"bank_account_id,omitempty"`
	PaymentMethod      string            `json:"payment_method,omitempty"`
	UPIID              string            `json:"upi_id,omitempty"`
	IsRecurring        bool              `json:"is_recurring"`
	RecurringFrequency string            `json:"recurring_frequency,omitempty"`
	IsTaxDeductible    bool              `json:"is_tax_deductible"`
	TaxSection         string            `json:"tax_section,omitempty"`
	GSTApplicable      bool              `json:"gst_applicable"`
	GSTAmount          *decimal.Decimal  `json:"gst_amount,omitempty"`
	HSNSACCode         string            `json:"hsn_sac_code,omitempty"`
	ReceiptURL         string            `json:"receipt_url,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Pagination Pagination            `json:"pagination"`
}

type CreateCategoryRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	CategoryType    string `json:"category_type" validate:"required,oneof=income expense investment"`
	IsTaxDeductible bool   `json:"is_tax_deductible"`
	TaxSection      string `json:"tax_section" validate:"omitempty,max=10"`
	Icon            string `json:"icon" validate:"omitempty,max=50"`
}

type CategoryResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	CategoryType    string `json:"category_type"`
	IsTaxDeductible bool   `json:"is_tax_deductible"`
	TaxSection      string `json:"tax_section,omitempty"`
	Icon            string `json:"icon,omitempty"`
}

type CategorySpendingResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

type CreateBankAccountRequest struct {
	AccountName   string          `json:"account_name" validate:"required,min=1,max=100"`
	BankName      string          `json:"bank_name" validate:"required,min=1,max=100"`
	AccountNumber string          `json:"account_number" validate:"required,min=4,max=30"`
	IFSCCode      string          `json:"ifsc_code" validate:"omitempty,ifsc"`
	AccountType   string          `json:"account_type" validate:"omitempty,max=50"`
	Balance       decimal.Decimal `json:"balance"`
}

type UpdateBankAccountRequest struct {
	AccountName *string          `json:"account_name" validate:"omitempty,min=1,max=100"`
	BankName    *string          `json:"bank_name" validate:"omitempty,min=1,max=100"`
	IFSCCode    *string          `json:"ifsc_code" validate:"omitempty,ifsc"`
	AccountType *string          `json:"account_type" validate:"omitempty,max=50"`
	Balance     *decimal.Decimal `json:"balance"`
}

type BankAccountResponse struct {
	ID            string          `json:"id"`
	AccountName   string          `json:"account_name"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	IFSCCode      string          `json:"ifsc_code,omitempty"`
	AccountType   string          `json:"account_type,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}
