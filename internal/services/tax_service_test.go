package services

import (
	"context"
	"testing"
	"time"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/taxcalc"
	"fintrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaxService() TaxService {
	return NewTaxService(
		repositories.NewTaxRepository(),
		repositories.NewDocumentRepository(),
		repositories.NewTransactionRepository(),
		repositories.NewInvestmentRepository(),
	)
}

func TestCreateTaxReturn_Defaults(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "tax@test.com", "some_password_1")

	income := decimal.NewFromInt(1200000)
	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{
		FiscalYear:       "2025-26",
		GrossTotalIncome: &income,
	})
	require.NoError(t, err)

	assert.Equal(t, "ITR-1", taxReturn.ITRFormType)
	assert.Equal(t, "draft", taxReturn.FilingStatus)
	require.NotNil(t, taxReturn.GrossTotalIncome)
	assert.True(t, taxReturn.GrossTotalIncome.Equal(income))
}

func TestCreateTaxReturn_OnePerFiscalYear(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "onefy@test.com", "some_password_1")

	_, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)

	_, err = svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)

	// A different user is free to file the same year.
	other := createVerifiedUser(t, db, "otherfy@test.com", "some_password_1")
	_, err = svc.CreateReturn(ctx, db, other.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	assert.NoError(t, err)
}

func TestListTaxReturns_Filter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "listtax@test.com", "some_password_1")

	for _, fy := range []string{"2023-24", "2024-25", "2025-26"} {
		_, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: fy})
		require.NoError(t, err)
	}

	all, err := svc.ListReturns(ctx, db, user.ID, &dto.TaxReturnListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := svc.ListReturns(ctx, db, user.ID, &dto.TaxReturnListQuery{FiscalYear: "2024-25"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "2024-25", one[0].FiscalYear)
}

func TestUpdateTaxReturn_FilingSetsDate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "filing@test.com", "some_password_1")

	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)
	assert.Nil(t, taxReturn.FilingDate)

	filed := "filed"
	ack := "ACK123456789"
	updated, err := svc.UpdateReturn(ctx, db, taxReturn.ID, user.ID, &dto.UpdateTaxReturnRequest{
		FilingStatus:         &filed,
		AcknowledgmentNumber: &ack,
	})
	require.NoError(t, err)

	assert.Equal(t, "filed", updated.FilingStatus)
	assert.Equal(t, ack, updated.AcknowledgmentNumber)
	require.NotNil(t, updated.FilingDate)
}

func TestTaxDeductions_TotalTracking(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "deduct@test.com", "some_password_1")

	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)

	first, err := svc.AddDeduction(ctx, db, taxReturn.ID, user.ID, &dto.CreateDeductionRequest{
		Section:     "80C",
		Description: "ELSS investment",
		Amount:      decimal.NewFromInt(150000),
	})
	require.NoError(t, err)

	_, err = svc.AddDeduction(ctx, db, taxReturn.ID, user.ID, &dto.CreateDeductionRequest{
		Section:     "80D",
		Description: "Health insurance premium",
		Amount:      decimal.NewFromInt(25000),
	})
	require.NoError(t, err)

	got, err := svc.GetReturn(ctx, db, taxReturn.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TotalDeductions)
	assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(175000)))

	deductions, err := svc.ListDeductions(ctx, db, taxReturn.ID, user.ID)
	require.NoError(t, err)
	assert.Len(t, deductions, 2)

	// Removing one rolls the total back.
	require.NoError(t, svc.DeleteDeduction(ctx, db, taxReturn.ID, first.ID, user.ID))

	got, err = svc.GetReturn(ctx, db, taxReturn.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TotalDeductions)
	assert.True(t, got.TotalDeductions.Equal(decimal.NewFromInt(25000)))
}

func TestAddDeduction_MissingProofDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "proof@test.com", "some_password_1")

	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = svc.AddDeduction(ctx, db, taxReturn.ID, user.ID, &dto.CreateDeductionRequest{
		Section:         "80C",
		Description:     "PPF deposit",
		Amount:          decimal.NewFromInt(50000),
		ProofDocumentID: &missing,
	})
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestDeleteDeduction_WrongReturn(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "wrongret@test.com", "some_password_1")

	first, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2023-24"})
	require.NoError(t, err)
	second, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)

	deduction, err := svc.AddDeduction(ctx, db, first.ID, user.ID, &dto.CreateDeductionRequest{
		Section:     "80C",
		Description: "LIC premium",
		Amount:      decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	// A deduction cannot be deleted through another return.
	err = svc.DeleteDeduction(ctx, db, second.ID, deduction.ID, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeductionNotFound)
}

func TestTaxReturn_OwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	owner := createVerifiedUser(t, db, "taxowner@test.com", "some_password_1")
	other := createVerifiedUser(t, db, "taxother@test.com", "some_password_1")

	taxReturn, err := svc.CreateReturn(ctx, db, owner.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)

	_, err = svc.GetReturn(ctx, db, taxReturn.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaxReturnNotFound)

	err = svc.DeleteReturn(ctx, db, taxReturn.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaxReturnNotFound)
}

func TestCalculateTax_Delegates(t *testing.T) {
	svc := newTestTaxService()

	result, err := svc.Calculate(context.Background(), &dto.CalculateTaxRequest{
		GrossIncome: decimal.NewFromInt(1000000),
		Age:         30,
		Regime:      "old",
		Deductions: map[string]decimal.Decimal{
			"80C":      decimal.NewFromInt(150000),
			"standard": decimal.NewFromInt(50000),
		},
	})
	require.NoError(t, err)

	// 1,000,000 gross, 150,000 under 80C plus the standard deduction.
	assert.True(t, result.TaxableIncome.Equal(decimal.NewFromInt(800000)))
	assert.True(t, result.TotalTaxLiability.Equal(decimal.NewFromInt(75400)))
}

func TestDetermineITRForm_Service(t *testing.T) {
	svc := newTestTaxService()
	ctx := context.Background()

	resp := svc.DetermineITRForm(ctx, &dto.DetermineITRFormRequest{
		IncomeSources: []string{"salary"},
	})
	assert.Equal(t, "ITR-1", resp.ITRForm)

	resp = svc.DetermineITRForm(ctx, &dto.DetermineITRFormRequest{
		IncomeSources:   []string{"salary"},
		HasCapitalGains: true,
	})
	assert.Equal(t, "ITR-2", resp.ITRForm)

	resp = svc.DetermineITRForm(ctx, &dto.DetermineITRFormRequest{
		IncomeSources:     []string{"salary", "business"},
		HasBusinessIncome: true,
	})
	assert.Equal(t, "ITR-3", resp.ITRForm)
}

func TestCompareRegimes_Service(t *testing.T) {
	svc := newTestTaxService()

	comparison := svc.CompareRegimes(context.Background(), &dto.CompareRegimesRequest{
		GrossIncome: decimal.NewFromInt(1000000),
		Age:         30,
		FiscalYear:  "2025-26",
		Deductions: map[string]decimal.Decimal{
			"80C":      decimal.NewFromInt(150000),
			"standard": decimal.NewFromInt(50000),
		},
	})

	assert.Equal(t, taxcalc.RegimeOld, comparison.BetterRegime)
	assert.True(t, comparison.OldRegime.TotalTaxLiability.Equal(decimal.NewFromInt(75400)))
	assert.True(t, comparison.NewRegime.TotalTaxLiability.Equal(decimal.NewFromInt(78000)))
	assert.True(t, comparison.Savings.IsZero())
}

func TestTaxSavingSuggestions_CombinesSources(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "suggest@test.com", "some_password_1")

	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{FiscalYear: "2024-25"})
	require.NoError(t, err)
	_, err = svc.AddDeduction(ctx, db, taxReturn.ID, user.ID, &dto.CreateDeductionRequest{
		Section:     "80C",
		Description: "PPF deposit",
		Amount:      decimal.NewFromInt(80000),
	})
	require.NoError(t, err)

	// A tax-deductible transaction inside the fiscal year adds to 80C.
	require.NoError(t, db.Create(&models.Transaction{
		UserID:          user.ID,
		Amount:          decimal.NewFromInt(20000),
		Description:     "LIC premium",
		TransactionDate: time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
		TransactionType: models.TransactionTypeDebit,
		IsTaxDeductible: true,
		TaxSection:      "80C",
	}).Error)

	// A tax-saving investment inside the fiscal year adds its opening amount.
	invType := &models.InvestmentType{Name: "ELSS", IsTaxSaving: true, TaxSection: "80C"}
	require.NoError(t, db.Create(invType).Error)
	require.NoError(t, db.Create(&models.Investment{
		UserID:           user.ID,
		InvestmentTypeID: invType.ID,
		Name:             "ELSS SIP",
		InvestmentDate:   time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		InitialAmount:    decimal.NewFromInt(30000),
		CurrentValue:     decimal.NewFromInt(30000),
		IsTaxSaving:      true,
		TaxSection:       "80C",
	}).Error)

	suggestions, err := svc.SavingSuggestions(ctx, db, user.ID, "2024-25")
	require.NoError(t, err)

	var s80c *taxcalc.Suggestion
	for i := range suggestions {
		if suggestions[i].Section == "80C" {
			s80c = &suggestions[i]
		}
	}
	require.NotNil(t, s80c)

	// 80,000 claimed + 20,000 transaction + 30,000 investment = 130,000,
	// leaving 20,000 of headroom under the 1.5 lakh cap.
	assert.True(t, s80c.CurrentAmount.Equal(decimal.NewFromInt(130000)),
		"current amount was %s", s80c.CurrentAmount)
	require.NotNil(t, s80c.RemainingLimit)
	assert.True(t, s80c.RemainingLimit.Equal(decimal.NewFromInt(20000)))
}

func TestTaxSummary_AggregatesFiscalYear(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()
	ctx := context.Background()

	user := createVerifiedUser(t, db, "summary@test.com", "some_password_1")

	// Two salary credits inside the year, one outside it.
	for _, txn := range []models.Transaction{
		{UserID: user.ID, Amount: decimal.NewFromInt(100000), TransactionDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), TransactionType: models.TransactionTypeCredit, Description: "Salary May"},
		{UserID: user.ID, Amount: decimal.NewFromInt(100000), TransactionDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), TransactionType: models.TransactionTypeCredit, Description: "Salary June"},
		{UserID: user.ID, Amount: decimal.NewFromInt(100000), TransactionDate: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), TransactionType: models.TransactionTypeCredit, Description: "Salary previous year"},
		{UserID: user.ID, Amount: decimal.NewFromInt(15000), TransactionDate: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), TransactionType: models.TransactionTypeDebit, IsTaxDeductible: true, TaxSection: "80D", Description: "Health insurance"},
	} {
		row := txn
		require.NoError(t, db.Create(&row).Error)
	}

	invType := &models.InvestmentType{Name: "PPF", IsTaxSaving: true, TaxSection: "80C"}
	require.NoError(t, db.Create(invType).Error)
	require.NoError(t, db.Create(&models.Investment{
		UserID:           user.ID,
		InvestmentTypeID: invType.ID,
		Name:             "PPF account",
		InvestmentDate:   time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		InitialAmount:    decimal.NewFromInt(50000),
		CurrentValue:     decimal.NewFromInt(50000),
		IsTaxSaving:      true,
		TaxSection:       "80C",
	}).Error)

	summary, err := svc.Summary(ctx, db, user.ID, "2024-25")
	require.NoError(t, err)

	assert.Equal(t, "2024-25", summary.FiscalYear)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(200000)),
		"total income was %s", summary.TotalIncome)
	assert.True(t, summary.TotalDeductions.Equal(decimal.NewFromInt(65000)))
	assert.True(t, summary.DeductionsBySection["80D"].Equal(decimal.NewFromInt(15000)))
	assert.True(t, summary.DeductionsBySection["80C"].Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "not_filed", summary.TaxReturnStatus)
	assert.Nil(t, summary.TaxReturnID)

	// Once a return exists for the year, its status and figures show up.
	income := decimal.NewFromInt(200000)
	taxReturn, err := svc.CreateReturn(ctx, db, user.ID, &dto.CreateTaxReturnRequest{
		FiscalYear:       "2024-25",
		GrossTotalIncome: &income,
	})
	require.NoError(t, err)

	summary, err = svc.Summary(ctx, db, user.ID, "2024-25")
	require.NoError(t, err)
	require.NotNil(t, summary.TaxReturnID)
	assert.Equal(t, taxReturn.ID, *summary.TaxReturnID)
	assert.Equal(t, "draft", summary.TaxReturnStatus)
}

func TestTaxSummary_InvalidFiscalYear(t *testing.T) {
	db := newTestDB(t)
	svc := newTestTaxService()

	user := createVerifiedUser(t, db, "badfy@test.com", "some_password_1")

	_, err := svc.Summary(context.Background(), db, user.ID, "2024-2025")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}
