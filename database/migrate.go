package database

import (
	"errors"
	"fmt"

	"fintrack_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserPreference{},
		&models.VerificationToken{},
		&models.PasswordResetToken{},
		&models.RefreshToken{},
		&models.TransactionCategory{},
		&models.BankAccount{},
		&models.Transaction{},
		&models.InvestmentType{},
		&models.Investment{},
		&models.InvestmentTransaction{},
		&models.TaxReturn{},
		&models.TaxDeduction{},
		&models.Document{},
	)
	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

// Seed inserts the built-in transaction categories and investment types when
// the tables are empty. Running it twice is a no-op.
func Seed(db *gorm.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}
	return seedInvestmentTypes(db)
}

func seedCategories(db *gorm.DB) error {
	var existing models.TransactionCategory
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check transaction categories: %w", err)
	}

	categories := []models.TransactionCategory{
		{Name: "Salary", CategoryType: models.CategoryTypeIncome, Icon: "briefcase"},
		{Name: "Business Income", CategoryType: models.CategoryTypeIncome, Icon: "store"},
		{Name: "Interest Income", CategoryType: models.CategoryTypeIncome, Icon: "percent"},
		{Name: "Rental Income", CategoryType: models.CategoryTypeIncome, Icon: "home"},

		{Name: "Groceries", CategoryType: models.CategoryTypeExpense, Icon: "shopping-cart"},
		{Name: "Rent", CategoryType: models.CategoryTypeExpense, Icon: "home"},
		{Name: "Utilities", CategoryType: models.CategoryTypeExpense, Icon: "zap"},
		{Name: "Transport", CategoryType: models.CategoryTypeExpense, Icon: "car"},
		{Name: "Dining Out", CategoryType: models.CategoryTypeExpense, Icon: "utensils"},
		{Name: "Entertainment", CategoryType: models.CategoryTypeExpense, Icon: "film"},
		{Name: "Shopping", CategoryType: models.CategoryTypeExpense, Icon: "shopping-bag"},
		{Name: "Healthcare", CategoryType: models.CategoryTypeExpense, Icon: "heart",
			IsTaxDeductible: true, TaxSection: "80D"},
		{Name: "Education", CategoryType: models.CategoryTypeExpense, Icon: "book",
			IsTaxDeductible: true, TaxSection: "80E"},
		{Name: "Insurance Premium", CategoryType: models.CategoryTypeExpense, Icon: "shield",
			IsTaxDeductible: true, TaxSection: "80C"},
		{Name: "Charitable Donation", CategoryType: models.CategoryTypeExpense, Icon: "gift",
			IsTaxDeductible: true, TaxSection: "80G"},

		{Name: "Mutual Funds", CategoryType: models.CategoryTypeInvestment, Icon: "trending-up"},
		{Name: "Stocks", CategoryType: models.CategoryTypeInvestment, Icon: "bar-chart"},
		{Name: "Fixed Deposit", CategoryType: models.CategoryTypeInvestment, Icon: "lock"},
	}

	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed transaction categories: %w", err)
	}
	return nil
}

func seedInvestmentTypes(db *gorm.DB) error {
	var existing models.InvestmentType
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check investment types: %w", err)
	}

	min := func(v int64) decimal.NullDecimal {
		return decimal.NullDecimal{Decimal: decimal.NewFromInt(v), Valid: true}
	}

	types := []models.InvestmentType{
		{
			Name:            "Mutual Fund",
			Description:     "Professionally managed pooled equity and debt funds",
			RiskLevel:       "medium",
			MinInvestment:   min(500),
			ExpectedReturns: "10-14%",
		},
		{
			Name:              "ELSS",
			Description:       "Equity linked savings scheme with 80C benefit",
			RiskLevel:         "medium",
			MinInvestment:     min(500),
			ExpectedReturns:   "10-14%",
			TaxImplication:    "Deductible under 80C up to 1.5 lakh; LTCG above 1 lakh taxed at 10%",
			IsTaxSaving:       true,
			TaxSection:        "80C",
			LockInPeriodMonth: 36,
		},
		{
			Name:            "Stocks",
			Description:     "Direct equity holdings on NSE/BSE",
			RiskLevel:       "high",
			MinInvestment:   min(100),
			ExpectedReturns: "varies",
		},
		{
			Name:            "Fixed Deposit",
			Description:     "Bank fixed deposit with guaranteed interest",
			RiskLevel:       "low",
			MinInvestment:   min(1000),
			ExpectedReturns: "6-7.5%",
			TaxImplication:  "Interest fully taxable at slab rate",
		},
		{
			Name:              "PPF",
			Description:       "Public provident fund backed by the government",
			RiskLevel:         "low",
			MinInvestment:     min(500),
			ExpectedReturns:   "7.1%",
			TaxImplication:    "EEE: contribution, interest and maturity all exempt",
			IsTaxSaving:       true,
			TaxSection:        "80C",
			LockInPeriodMonth: 180,
		},
		{
			Name:              "NPS",
			Description:       "National pension system retirement account",
			RiskLevel:         "medium",
			MinInvestment:     min(500),
			ExpectedReturns:   "8-10%",
			TaxImplication:    "Additional 50k deduction under 80CCD(1B)",
			IsTaxSaving:       true,
			TaxSection:        "80CCD",
			LockInPeriodMonth: 0,
		},
		{
			Name:            "Gold",
			Description:     "Sovereign gold bonds and gold ETFs",
			RiskLevel:       "medium",
			MinInvestment:   min(1000),
			ExpectedReturns: "varies",
		},
		{
			Name:            "Real Estate",
			Description:     "Residential or commercial property holdings",
			RiskLevel:       "medium",
			MinInvestment:   min(100000),
			ExpectedReturns: "varies",
		},
	}

	if err := db.Create(&types).Error; err != nil {
		return fmt.Errorf("failed to seed investment types: %w", err)
	}
	return nil
}
