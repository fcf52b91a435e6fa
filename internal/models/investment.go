package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentType struct {
	BaseModel
	Name              string              `gorm:"size:100;not null" json:"name"`
	Description       string              `gorm:"type:text" json:"description"`
	RiskLevel         string              `gorm:"size:50" json:"risk_level"`
	MinInvestment     decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"min_investment"`
	ExpectedReturns   string              `gorm:"size:50" json:"expected_returns"`
	TaxImplication    string              `gorm:"type:text" json:"tax_implication"`
	IsTaxSaving       bool                `gorm:"default:false" json:"is_tax_saving"`
	TaxSection        string              `gorm:"size:10" json:"tax_section"`
	LockInPeriodMonth int                 `gorm:"column:lock_in_period" json:"lock_in_period"`
}

type Investment struct {
	BaseModel
	UserID           string              `gorm:"type:uuid;not null;index" json:"user_id"`
	InvestmentTypeID string              `gorm:"type:uuid;not null" json:"investment_type_id"`
	Name             string              `gorm:"size:255;not null" json:"name"`
	InvestmentDate   time.Time           `gorm:"not null" json:"investment_date"`
	InitialAmount    decimal.Decimal     `gorm:"type:numeric(15,2);not null" json:"initial_amount"`
	CurrentValue     decimal.Decimal     `gorm:"type:numeric(15,2)" json:"current_value"`
	Units            decimal.NullDecimal `gorm:"type:numeric(15,6)" json:"units"`
	MaturityDate     *time.Time          `json:"maturity_date"`
	InterestRate     decimal.NullDecimal `gorm:"type:numeric(5,2)" json:"interest_rate"`
	Broker           string              `gorm:"size:100" json:"broker"`
	FolioNumber      string              `gorm:"size:100" json:"folio_number"`
	IsTaxSaving      bool                `gorm:"default:false" json:"is_tax_saving"`
	TaxSection       string              `gorm:"size:10" json:"tax_section"`
	IsActive         bool                `gorm:"default:true" json:"is_active"`
	Notes            string              `gorm:"type:text" json:"notes"`

	InvestmentType *InvestmentType         `gorm:"foreignKey:InvestmentTypeID" json:"investment_type,omitempty"`
	Transactions   []InvestmentTransaction `gorm:"foreignKey:InvestmentID" json:"-"`
}

type InvestmentTransaction struct {
	BaseModel
	InvestmentID    string              `gorm:"type:uuid;not null;index" json:"investment_id"`
	TransactionDate time.Time           `gorm:"not null" json:"transaction_date"`
	TransactionType InvestmentTxnType   `gorm:"size:50;not null" json:"transaction_type"`
	Amount          decimal.Decimal     `gorm:"type:numeric(15,2);not null" json:"amount"`
	Units           decimal.NullDecimal `gorm:"type:numeric(15,6)" json:"units"`
	UnitPrice       decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"unit_price"`
	Notes           string              `gorm:"type:text" json:"notes"`
}
