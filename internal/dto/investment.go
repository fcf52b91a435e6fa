package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvestmentRequest struct {
	Name             string           `json:"name" validate:"required,min=1,max=255"`
	InvestmentTypeID string           `json:"investment_type_id" validate:"required,uuid"`
	InvestmentDate   time.Time        `json:"investment_date" validate:"required"`
	InitialAmount    decimal.Decimal  `json:"initial_amount" validate:"required"`
	CurrentValue     *decimal.Decimal `json:"current_value"`
	Units            *decimal.Decimal `json:"units"`
	MaturityDate     *time.Time       `json:"maturity_date"`
	InterestRate     *decimal.Decimal `json:"interest_rate"`
	Broker           string           `json:"broker" validate:"omitempty,max=100"`
	FolioNumber      string           `json:"folio_number" validate:"omitempty,max=100"`
	IsTaxSaving      bool             `json:"is_tax_saving"`
	TaxSection       string           `json:"tax_section" validate:"omitempty,max=10"`
	Notes            string           `json:"notes" validate:"omitempty,max=1000"`
}

type UpdateInvestmentRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	Units        *decimal.Decimal `json:"units"`
	MaturityDate *time.Time       `json:"maturity_date"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	Broker       *string          `json:"broker" validate:"omitempty,max=100"`
	FolioNumber  *string          `json:"folio_number" validate:"omitempty,max=100"`
	IsTaxSaving  *bool            `json:"is_tax_saving"`
	TaxSection   *string          `json:"tax_section" validate:"omitempty,max=10"`
	IsActive     *bool            `json:"is_active"`
	Notes        *string          `json:"notes" validate:"omitempty,max=1000"`
}

type CreateInvestmentTransactionRequest struct {
	TransactionType string           `json:"transaction_type" validate:"required,oneof=buy sell dividend interest"`
	TransactionDate time.Time        `json:"transaction_date" validate:"required"`
	Amount          decimal.Decimal  `json:"amount" validate:"required"`
	Units           *decimal.Decimal `json:"units"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Notes           string           `json:"notes" validate:"omitempty,max=1000"`
}

type InvestmentTypeResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	RiskLevel       string           `json:"risk_level,omitempty"`
	MinInvestment   *decimal.Decimal `json:"min_investment,omitempty"`
	ExpectedReturns string           `json:"expected_returns,omitempty"`
	TaxImplication  string           `json:"tax_implication,omitempty"`
	IsTaxSaving     bool             `json:"is_tax_saving"`
	TaxSection      string           `json:"tax_section,omitempty"`
	LockInPeriod    int              `json:"lock_in_period"`
}

type InvestmentResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	InvestmentTypeID string                  `json:"investment_type_id"`
	InvestmentType   *InvestmentTypeResponse `json:"investment_type,omitempty"`
	InvestmentDate   time.Time               `json:"investment_date"`
	InitialAmount    decimal.Decimal         `json:"initial_amount"`
	CurrentValue     decimal.Decimal         `json:"current_value"`
	Units            *decimal.Decimal        `json:"units,omitempty"`
	MaturityDate     *time.Time              `json:"maturity_date,omitempty"`
	InterestRate     *decimal.Decimal        `json:"interest_rate,omitempty"`
	Broker           string                  `json:"broker,omitempty"`
	FolioNumber      string                  `json:"folio_number,omitempty"`
	IsTaxSaving      bool                    `json:"is_tax_saving"`
	TaxSection       string                  `json:"tax_section,omitempty"`
	IsActive         bool                    `json:"is_active"`
	Notes            string                  `json:"notes,omitempty"`
	GainLoss         decimal.Decimal         `json:"gain_loss"`
	GainLossPercent  decimal.Decimal         `json:"gain_loss_percent"`
	CreatedAt        time.Time               `json:"created_at"`
}

type InvestmentTransactionResponse struct {
	ID              string           `json:"id"`
	InvestmentID    string           `json:"investment_id"`
	TransactionType string           `json:"transaction_type"`
	TransactionDate time.Time        `json:"transaction_date"`
	Amount          decimal.Decimal  `json:"amount"`
	Units           *decimal.Decimal `json:"units,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// PortfolioSummaryResponse aggregates all active holdings of one user.
type PortfolioSummaryResponse struct {
	TotalInvested   decimal.Decimal          `json:"total_invested"`
	CurrentValue    decimal.Decimal          `json:"current_value"`
	GainLoss        decimal.Decimal          `json:"gain_loss"`
	GainLossPercent decimal.Decimal          `json:"gain_loss_percent"`
	TaxSavingTotal  decimal.Decimal          `json:"tax_saving_total"`
	Count           int                      `json:"count"`
	ByType          []PortfolioTypeBreakdown `json:"by_type"`
}

type PortfolioTypeBreakdown struct {
	TypeName     string          `json:"type_name"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Count        int             `json:"count"`
}
