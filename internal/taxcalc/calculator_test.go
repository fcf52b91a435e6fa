package taxcalc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculate_OldRegime_NoDeductions(t *testing.T) {
	calc := New("2025-26")
	result := calc.Calculate(Input{
		GrossIncome: d(1000000),
		Age:         30,
		Regime:      RegimeOld,
	})

	// 250k-500k at 5% = 12,500; 500k-1,000k at 20% = 100,000.
	assert.True(t, result.TaxLiability.Equal(d(112500)), "tax = %s", result.TaxLiability)
	assert.True(t, result.EducationCess.Equal(d(4500)), "cess = %s", result.EducationCess)
	assert.True(t, result.TotalTaxLiability.Equal(d(117000)))
	assert.Equal(t, "2025-26", result.FiscalYear)
}

func TestCalculate_OldRegime_DeductionCaps(t *testing.T) {
	calc := New("2025-26")
	result := calc.Calculate(Input{
		GrossIncome: d(1000000),
		Age:         30,
		Regime:      RegimeOld,
		Deductions: map[string]decimal.Decimal{
			"80C":      d(200000), // capped at 150,000
			"standard": d(50000),
		},
	})

	assert.True(t, result.TotalDeductions.Equal(d(250000)))
	assert.True(t, result.EligibleDeductions.Equal(d(200000)))
	assert.True(t, result.TaxableIncome.Equal(d(800000)))
	// 12,500 + 300,000 at 20% = 72,500.
	assert.True(t, result.TaxLiability.Equal(d(72500)), "tax = %s", result.TaxLiability)
}

func TestCalculate_OldRegime_RebateAtFiveLakh(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(500000),
		Age:         30,
		Regime:      RegimeOld,
	})

	// Slab tax of 12,500 is wiped by the 87A rebate.
	assert.True(t, result.TaxLiability.IsZero(), "tax = %s", result.TaxLiability)
	assert.True(t, result.TotalTaxLiability.IsZero())
}

func TestCalculate_OldRegime_JustAboveRebateThreshold(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(500001),
		Age:         30,
		Regime:      RegimeOld,
	})

	// One rupee over the threshold loses the whole rebate.
	assert.True(t, result.TaxLiability.GreaterThan(d(12500)), "tax = %s", result.TaxLiability)
}

func TestCalculate_OldRegime_SeniorExemption(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(400000),
		Age:         65,
		Regime:      RegimeOld,
	})

	// Senior slab starts at 3 lakh: tax 5,000, removed by rebate.
	assert.True(t, result.TaxLiability.IsZero(), "tax = %s", result.TaxLiability)
}

func TestCalculate_OldRegime_SuperSenior(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(500000),
		Age:         82,
		Regime:      RegimeOld,
	})

	// Super senior pays nothing up to 5 lakh even before the rebate.
	assert.True(t, result.TaxLiability.IsZero())
}

func TestCalculate_NewRegime_IgnoresDeductions(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(1600000),
		Age:         30,
		Regime:      RegimeNew,
		Deductions: map[string]decimal.Decimal{
			"80C": d(150000),
		},
	})

	assert.True(t, result.EligibleDeductions.IsZero())
	assert.True(t, result.TaxableIncome.Equal(d(1600000)))
	// 12,500 + 25,000 + 37,500 + 50,000 + 62,500 + 30,000 = 217,500.
	assert.True(t, result.TaxLiability.Equal(d(217500)), "tax = %s", result.TaxLiability)
	assert.True(t, result.EducationCess.Equal(d(8700)))
}

func TestCalculate_NewRegime_RebateAtSevenLakh(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(700000),
		Age:         30,
		Regime:      RegimeNew,
	})

	// Slab tax 32,500 less the 25,000 rebate.
	assert.True(t, result.TaxLiability.Equal(d(7500)), "tax = %s", result.TaxLiability)
}

func TestCalculate_ZeroIncome(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{Age: 30, Regime: RegimeOld})

	assert.True(t, result.TaxableIncome.IsZero())
	assert.True(t, result.TotalTaxLiability.IsZero())
}

func TestCalculate_DeductionsExceedIncome(t *testing.T) {
	calc := New("")
	result := calc.Calculate(Input{
		GrossIncome: d(100000),
		Age:         30,
		Regime:      RegimeOld,
		Deductions: map[string]decimal.Decimal{
			"80C":      d(150000),
			"standard": d(50000),
		},
	})

	// Taxable income floors at zero.
	assert.True(t, result.TaxableIncome.IsZero())
	assert.True(t, result.TotalTaxLiability.IsZero())
}

func TestFiscalYearAt(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), "2023-24"},
		{time.Date(1999, time.December, 1, 0, 0, 0, 0, time.UTC), "1999-00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FiscalYearAt(tt.date), "date %s", tt.date)
	}
}

func TestDetermineITRForm(t *testing.T) {
	assert.Equal(t, "ITR-1",
		DetermineITRForm([]string{"salary"}, false, false, false))
	assert.Equal(t, "ITR-1",
		DetermineITRForm([]string{"salary", "house_property", "other_sources"}, false, false, false))
	assert.Equal(t, "ITR-2",
		DetermineITRForm([]string{"salary"}, true, false, false))
	assert.Equal(t, "ITR-2",
		DetermineITRForm([]string{"salary", "capital_gains"}, true, false, false))
	assert.Equal(t, "ITR-2",
		DetermineITRForm([]string{"salary"}, false, true, false))
	assert.Equal(t, "ITR-3",
		DetermineITRForm([]string{"salary", "business"}, false, false, true))
}
