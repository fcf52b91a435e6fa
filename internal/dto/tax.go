package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTaxReturnRequest struct {
	FiscalYear       string           `json:"fiscal_year" validate:"required,fiscal_year"`
	ITRFormType      string           `json:"itr_form_type" validate:"omitempty,oneof=ITR-1 ITR-2 ITR-3 ITR-4"`
	GrossTotalIncome *decimal.Decimal `json:"gross_total_income"`
	TDSAmount        *decimal.Decimal `json:"tds_amount"`
}

type UpdateTaxReturnRequest struct {
	ITRFormType          *string          `json:"itr_form_type" validate:"omitempty,oneof=ITR-1 ITR-2 ITR-3 ITR-4"`
	FilingStatus         *string          `json:"filing_status" validate:"omitempty,oneof=draft filed verified"`
	GrossTotalIncome     *decimal.Decimal `json:"gross_total_income"`
	TaxableIncome        *decimal.Decimal `json:"taxable_income"`
	TaxPayable           *decimal.Decimal `json:"tax_payable"`
	TDSAmount            *decimal.Decimal `json:"tds_amount"`
	TaxPaid              *decimal.Decimal `json:"tax_paid"`
	RefundAmount         *decimal.Decimal `json:"refund_amount"`
	RefundStatus         *string          `json:"refund_status" validate:"omitempty,max=50"`
	FilingDate           *time.Time       `json:"filing_date"`
	AcknowledgmentNumber *string          `json:"acknowledgment_number" validate:"omitempty,max=100"`
	VerificationMethod   *string          `json:"verification_method" validate:"omitempty,max=50"`
	VerificationDate     *time.Time       `json:"verification_date"`
}

type TaxReturnListQuery struct {
	FiscalYear   string `form:"fiscal_year" validate:"omitempty,fiscal_year"`
	FilingStatus string `form:"filing_status" validate:"omitempty,oneof=draft filed verified"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type TaxReturnResponse struct {
	ID                   string                 `json:"id"`
	FiscalYear           string                 `json:"fiscal_year"`
	ITRFormType          string                 `json:"itr_form_type,omitempty"`
	FilingStatus         string                 `json:"filing_status"`
	GrossTotalIncome     *decimal.Decimal       `json:"gross_total_income,omitempty"`
	TotalDeductions      *decimal.Decimal       `json:"total_deductions,omitempty"`
	TaxableIncome        *decimal.Decimal       `json:"taxable_income,omitempty"`
	TaxPayable           *decimal.Decimal       `json:"tax_payable,omitempty"`
	TDSAmount            *decimal.Decimal       `json:"tds_amount,omitempty"`
	TaxPaid              *decimal.Decimal       `json:"tax_paid,omitempty"`
	RefundAmount         *decimal.Decimal       `json:"refund_amount,omitempty"`
	RefundStatus         string                 `json:"refund_status,omitempty"`
	FilingDate           *time.Time             `json:"filing_date,omitempty"`
	AcknowledgmentNumber string                 `json:"acknowledgment_number,omitempty"`
	VerificationMethod   string                 `json:"verification_method,omitempty"`
	VerificationDate     *time.Time             `json:"verification_date,omitempty"`
	Deductions           []TaxDeductionResponse `json:"deductions,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

type CreateDeductionRequest struct {
	Section         string          `json:"section" validate:"required,min=1,max=10"`
	Description     string          `json:"description" validate:"required,max=500"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	ProofDocumentID *string         `json:"proof_document_id" validate:"omitempty,uuid"`
}

type TaxDeductionResponse struct {
	ID              string          `json:"id"`
	TaxReturnID     string          `json:"tax_return_id"`
	Section         string          `json:"section"`
	Description     string          `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	ProofDocumentID *string         `json:"proof_document_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CalculateTaxRequest runs the slab calculator without touching stored
// returns.
type CalculateTaxRequest struct {
	GrossIncome decimal.Decimal            `json:"gross_income" validate:"required"`
	Age         int                        `json:"age" validate:"omitempty,min=0,max=120"`
	Regime      string                     `json:"regime" validate:"required,oneof=old new"`
	FiscalYear  string                     `json:"fiscal_year" validate:"omitempty,fiscal_year"`
	Deductions  map[string]decimal.Decimal `json:"deductions"`
}

// FiscalYearQuery selects a fiscal year for advisory endpoints; empty means
// the current one.
type FiscalYearQuery struct {
	FiscalYear string `form:"fiscal_year" validate:"omitempty,fiscal_year"`
}

type CompareRegimesRequest struct {
	GrossIncome decimal.Decimal            `json:"gross_income" validate:"required"`
	Age         int                        `json:"age" validate:"omitempty,min=0,max=120"`
	FiscalYear  string                     `json:"fiscal_year" validate:"omitempty,fiscal_year"`
	Deductions  map[string]decimal.Decimal `json:"deductions"`
}

// TaxSummaryResponse aggregates a fiscal year's income, deductible spending
// and tax-saving investments together with the filed return, if any.
type TaxSummaryResponse struct {
	FiscalYear          string                     `json:"fiscal_year"`
	TotalIncome         decimal.Decimal            `json:"total_income"`
	TotalDeductions     decimal.Decimal            `json:"total_deductions"`
	DeductionsBySection map[string]decimal.Decimal `json:"deductions_by_section"`
	TaxReturnID         *string                    `json:"tax_return_id,omitempty"`
	TaxReturnStatus     string                     `json:"tax_return_status"`
	TaxableIncome       *decimal.Decimal           `json:"taxable_income,omitempty"`
	TaxPayable          *decimal.Decimal           `json:"tax_payable,omitempty"`
	TaxPaid             *decimal.Decimal           `json:"tax_paid,omitempty"`
	TDSAmount           *decimal.Decimal           `json:"tds_amount,omitempty"`
	RefundAmount        *decimal.Decimal           `json:"refund_amount,omitempty"`
	RefundStatus        string                     `json:"refund_status,omitempty"`
}

type DetermineITRFormRequest struct {
	IncomeSources     []string `json:"income_sources" validate:"required,min=1"`
	HasCapitalGains   bool     `json:"has_capital_gains"`
	HasForeignIncome  bool     `json:"has_foreign_income"`
	HasBusinessIncome bool     `json:"has_business_income"`
}

type DetermineITRFormResponse struct {
	ITRForm string `json:"itr_form"`
}
