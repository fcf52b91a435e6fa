package models

// CategoryType classifies transaction categories.
type CategoryType string

const (
	CategoryTypeIncome     CategoryType = "income"
	CategoryTypeExpense    CategoryType = "expense"
	CategoryTypeInvestment CategoryType = "investment"
)

// TransactionType is the direction of a money movement.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// InvestmentTxnType classifies investment ledger entries.
type InvestmentTxnType string

const (
	InvestmentTxnBuy      InvestmentTxnType = "buy"
	InvestmentTxnSell     InvestmentTxnType = "sell"
	InvestmentTxnDividend InvestmentTxnType = "dividend"
	InvestmentTxnInterest InvestmentTxnType = "interest"
)

// FilingStatus is the lifecycle state of a tax return.
type FilingStatus string

const (
	FilingStatusDraft    FilingStatus = "draft"
	FilingStatusFiled    FilingStatus = "filed"
	FilingStatusVerified FilingStatus = "verified"
)

// ITR form types accepted by the income tax department.
const (
	ITRForm1 = "ITR-1"
	ITRForm2 = "ITR-2"
	ITRForm3 = "ITR-3"
	ITRForm4 = "ITR-4"
)

// DocumentType classifies uploaded tax documents.
type DocumentType string

const (
	DocumentTypeIncomeProof     DocumentType = "income_proof"
	DocumentTypeTaxForm         DocumentType = "tax_form"
	DocumentTypeInvestmentProof DocumentType = "investment_proof"
	DocumentTypeReceipt         DocumentType = "receipt"
	DocumentTypeOther           DocumentType = "other"
)
