package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionCategory struct {
	BaseModel
	Name            string       `gorm:"size:100;not null" json:"name"`
	Description     string       `gorm:"type:text" json:"description"`
	CategoryType    CategoryType `gorm:"size:50;not null" json:"category_type"`
	IsTaxDeductible bool         `gorm:"default:false" json:"is_tax_deductible"`
	TaxSection      string       `gorm:"size:10" json:"tax_section"`
	Icon            string       `gorm:"size:50" json:"icon"`
}

func (TransactionCategory) TableName() string { return "transaction_categories" }

// Transaction is a single money movement. Monetary fields use numeric
// columns and decimal.Decimal; float64 would accumulate rounding error.
type Transaction struct {
	BaseModel
	UserID             string              `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount             decimal.Decimal     `gorm:"type:numeric(15,2);not null" json:"amount"`
	Description        string              `gorm:"type:text" json:"description"`
	TransactionDate    time.Time           `gorm:"not null;index" json:"transaction_date"`
	CategoryID         *string             `gorm:"type:uuid" json:"category_id"`
	TransactionType    TransactionType     `gorm:"size:50;not null" json:"transaction_type"`
	PaymentMethod      string              `gorm:"size:50" json:"payment_method"`
	UPIID              string              `gorm:"column:upi_id;size:100" json:"upi_id"`
	BankAccountID      *string             `gorm:"type:uuid" json:"bank_account_id"`
	IsRecurring        bool                `gorm:"default:false" json:"is_recurring"`
	RecurringFrequency string              `gorm:"size:50" json:"recurring_frequency"`
	IsTaxDeductible    bool                `gorm:"default:false" json:"is_tax_deductible"`
	TaxSection         string              `gorm:"size:10" json:"tax_section"`
	ReceiptURL         string              `gorm:"size:255" json:"receipt_url"`
	GSTApplicable      bool                `gorm:"column:gst_applicable;default:false" json:"gst_applicable"`
	GSTAmount          decimal.NullDecimal `gorm:"column:gst_amount;type:numeric(10,2)" json:"gst_amount"`
	HSNSACCode         string              `gorm:"column:hsn_sac_code;size:20" json:"hsn_sac_code"`
	Notes              string              `gorm:"type:text" json:"notes"`

	Category    *TransactionCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BankAccount *BankAccount         `gorm:"foreignKey:BankAccountID" json:"bank_account,omitempty"`
}

type BankAccount struct {
	BaseModel
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountName   string          `gorm:"size:100;not null" json:"account_name"`
	BankName      string          `gorm:"size:100;not null" json:"bank_name"`
	AccountNumber string          `gorm:"size:30;not null" json:"account_number"`
	IFSCCode      string          `gorm:"column:ifsc_code;size:11" json:"ifsc_code"`
	AccountType   string          `gorm:"size:50" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"balance"`
}
