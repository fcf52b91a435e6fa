package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TaxReturn struct {
	BaseModel
	UserID               string              `gorm:"type:uuid;not null;index" json:"user_id"`
	FiscalYear           string              `gorm:"size:9;not null" json:"fiscal_year"` // e.g. 2023-24
	ITRFormType          string              `gorm:"column:itr_form_type;size:10;not null" json:"itr_form_type"`
	FilingStatus         FilingStatus        `gorm:"size:50;not null;default:'draft'" json:"filing_status"`
	GrossTotalIncome     decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"gross_total_income"`
	TotalDeductions      decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"total_deductions"`
	TaxableIncome        decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"taxable_income"`
	TaxPayable           decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"tax_payable"`
	TDSAmount            decimal.NullDecimal `gorm:"column:tds_amount;type:numeric(15,2)" json:"tds_amount"`
	TaxPaid              decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"tax_paid"`
	RefundAmount         decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"refund_amount"`
	RefundStatus         string              `gorm:"size:50" json:"refund_status"`
	FilingDate           *time.Time          `json:"filing_date"`
	AcknowledgmentNumber string              `gorm:"size:100" json:"acknowledgment_number"`
	VerificationMethod   string              `gorm:"size:50" json:"verification_method"`
	VerificationDate     *time.Time          `json:"verification_date"`

	Deductions []TaxDeduction `gorm:"foreignKey:TaxReturnID" json:"deductions,omitempty"`
}

type TaxDeduction struct {
	BaseModel
	TaxReturnID     string          `gorm:"type:uuid;not null;index" json:"tax_return_id"`
	Section         string          `gorm:"size:10;not null" json:"section"` // 80C, 80D, ...
	Description     string          `gorm:"type:text;not null" json:"description"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	ProofDocumentID *string         `gorm:"type:uuid" json:"proof_document_id"`
}

type Document struct {
	BaseModel
	UserID            string       `gorm:"type:uuid;not null;index" json:"user_id"`
	DocumentType      DocumentType `gorm:"size:50;not null" json:"document_type"`
	DocumentName      string       `gorm:"size:255;not null" json:"document_name"`
	FilePath          string       `gorm:"size:255;not null" json:"file_path"`
	FileSize          int64        `gorm:"not null" json:"file_size"`
	MimeType          string       `gorm:"size:100;not null" json:"mime_type"`
	FiscalYear        string       `gorm:"size:9" json:"fiscal_year"`
	RelatedEntityType string       `gorm:"size:50" json:"related_entity_type"` // tax_return, transaction, investment
	RelatedEntityID   *string      `gorm:"type:uuid" json:"related_entity_id"`
	Notes             string       `gorm:"type:text" json:"notes"`
}
