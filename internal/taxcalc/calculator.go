// Package taxcalc computes Indian personal income tax for the old and new
// regimes. All arithmetic is done in decimal so slab boundaries and cess
// never pick up float rounding error.
package taxcalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Regime selects the tax computation rules.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// Statutory deduction caps (old regime).
var (
	capStandardDeduction = decimal.NewFromInt(50000)
	cap80C               = decimal.NewFromInt(150000)
	cap80D               = decimal.NewFromInt(25000)
	cap80DSenior         = decimal.NewFromInt(50000)
	cap24B               = decimal.NewFromInt(200000)
	cap80CCD1B           = decimal.NewFromInt(50000)
)

// cessRate is the health and education cess applied on top of the slab tax.
var cessRate = decimal.NewFromFloat(0.04)

type slab struct {
	lower decimal.Decimal
	upper decimal.Decimal // zero value means unbounded
	rate  decimal.Decimal
}

// Input is one tax computation request.
type Input struct {
	GrossIncome decimal.Decimal
	Age         int
	Regime      Regime
	// Deductions maps section codes ("80C", "80D", "24B", "80CCD(1B)",
	// "HRA", "standard") to claimed amounts. Ignored under the new regime.
	Deductions map[string]decimal.Decimal
}

// Result is the full breakdown of a computation.
type Result struct {
	GrossIncome        decimal.Decimal `json:"gross_income"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	EligibleDeductions decimal.Decimal `json:"eligible_deductions"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	TaxLiability       decimal.Decimal `json:"tax_liability"`
	EducationCess      decimal.Decimal `json:"education_cess"`
	TotalTaxLiability  decimal.Decimal `json:"total_tax_liability"`
	Regime             Regime          `json:"regime"`
	FiscalYear         string          `json:"fiscal_year"`
}

// Calculator computes tax for one fiscal year.
type Calculator struct {
	fiscalYear string
}

// New returns a calculator for the given fiscal year ("2025-26"). An empty
// year means the current one.
func New(fiscalYear string) *Calculator {
	if fiscalYear == "" {
		fiscalYear = CurrentFiscalYear()
	}
	return &Calculator{fiscalYear: fiscalYear}
}

// CurrentFiscalYear returns the running Indian fiscal year (April 1 to
// March 31) in "YYYY-YY" form.
func CurrentFiscalYear() string {
	return FiscalYearAt(time.Now())
}

// FiscalYearAt returns the fiscal year containing t.
func FiscalYearAt(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		return fmt.Sprintf("%d-%02d", year-1, year%100)
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// Calculate runs the slab computation for the input.
func (c *Calculator) Calculate(in Input) Result {
	deductions := in.Deductions
	if deductions == nil {
		deductions = map[string]decimal.Decimal{}
	}

	totalClaimed := decimal.Zero
	for _, v := range deductions {
		totalClaimed = totalClaimed.Add(v)
	}

	var taxable, eligible decimal.Decimal
	if in.Regime == RegimeNew {
		// The new regime ignores chapter VI-A deductions.
		taxable = in.GrossIncome
		eligible = decimal.Zero
	} else {
		eligible = eligibleDeductions(deductions, in.Age)
		taxable = decimal.Max(decimal.Zero, in.GrossIncome.Sub(eligible))
	}

	var tax decimal.Decimal
	if in.Regime == RegimeNew {
		tax = slabTax(taxable, newRegimeSlabs())
		tax = applyRebate(tax, taxable, decimal.NewFromInt(700000), decimal.NewFromInt(25000))
	} else {
		tax = slabTax(taxable, oldRegimeSlabs(in.Age))
		tax = applyRebate(tax, taxable, decimal.NewFromInt(500000), decimal.NewFromInt(12500))
	}

	cess := tax.Mul(cessRate).Round(2)
	tax = tax.Round(2)

	return Result{
		GrossIncome:        in.GrossIncome,
		TotalDeductions:    totalClaimed,
		EligibleDeductions: eligible,
		TaxableIncome:      taxable,
		TaxLiability:       tax,
		EducationCess:      cess,
		TotalTaxLiability:  tax.Add(cess),
		Regime:             in.Regime,
		FiscalYear:         c.fiscalYear,
	}
}

func eligibleDeductions(deductions map[string]decimal.Decimal, age int) decimal.Decimal {
	capped := func(section string, cap decimal.Decimal) decimal.Decimal {
		return decimal.Min(cap, deductions[section])
	}

	limit80D := cap80D
	if age >= 60 {
		limit80D = cap80DSenior
	}

	eligible := capped("standard", capStandardDeduction).
		Add(capped("80C", cap80C)).
		Add(capped("80D", limit80D)).
		Add(deductions["HRA"]).
		Add(capped("24B", cap24B)).
		Add(capped("80CCD(1B)", cap80CCD1B))

	return eligible
}

func slabTax(taxable decimal.Decimal, slabs []slab) decimal.Decimal {
	tax := decimal.Zero
	for _, s := range slabs {
		if taxable.LessThanOrEqual(s.lower) {
			continue
		}
		upper := taxable
		if !s.upper.IsZero() {
			upper = decimal.Min(taxable, s.upper)
		}
		tax = tax.Add(upper.Sub(s.lower).Mul(s.rate))
	}
	return tax
}

// applyRebate implements the section 87A rebate: full relief up to the
// threshold, nothing beyond it.
func applyRebate(tax, taxable, threshold, maxRebate decimal.Decimal) decimal.Decimal {
	if taxable.GreaterThan(threshold) {
		return tax
	}
	rebate := decimal.Min(maxRebate, taxable)
	return decimal.Max(decimal.Zero, tax.Sub(rebate))
}

func oldRegimeSlabs(age int) []slab {
	rate5 := decimal.NewFromFloat(0.05)
	rate20 := decimal.NewFromFloat(0.20)
	rate30 := decimal.NewFromFloat(0.30)

	switch {
	case age >= 80: // super senior citizen
		return []slab{
			{decimal.NewFromInt(500000), decimal.NewFromInt(1000000), rate20},
			{decimal.NewFromInt(1000000), decimal.Zero, rate30},
		}
	case age >= 60: // senior citizen
		return []slab{
			{decimal.NewFromInt(300000), decimal.NewFromInt(500000), rate5},
			{decimal.NewFromInt(500000), decimal.NewFromInt(1000000), rate20},
			{decimal.NewFromInt(1000000), decimal.Zero, rate30},
		}
	default:
		return []slab{
			{decimal.NewFromInt(250000), decimal.NewFromInt(500000), rate5},
			{decimal.NewFromInt(500000), decimal.NewFromInt(1000000), rate20},
			{decimal.NewFromInt(1000000), decimal.Zero, rate30},
		}
	}
}

func newRegimeSlabs() []slab {
	return []slab{
		{decimal.NewFromInt(250000), decimal.NewFromInt(500000), decimal.NewFromFloat(0.05)},
		{decimal.NewFromInt(500000), decimal.NewFromInt(750000), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(750000), decimal.NewFromInt(1000000), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(1000000), decimal.NewFromInt(1250000), decimal.NewFromFloat(0.20)},
		{decimal.NewFromInt(1250000), decimal.NewFromInt(1500000), decimal.NewFromFloat(0.25)},
		{decimal.NewFromInt(1500000), decimal.Zero, decimal.NewFromFloat(0.30)},
	}
}

// DetermineITRForm picks the ITR form from declared income sources.
func DetermineITRForm(incomeSources []string, hasCapitalGains, hasForeignIncome, hasBusinessIncome bool) string {
	simpleOnly := true
	for _, source := range incomeSources {
		switch source {
		case "salary", "house_property", "other_sources":
		default:
			simpleOnly = false
		}
	}

	switch {
	case simpleOnly && len(incomeSources) <= 3 && !hasCapitalGains && !hasForeignIncome && !hasBusinessIncome:
		return "ITR-1"
	case !hasBusinessIncome:
		return "ITR-2"
	default:
		return "ITR-3"
	}
}
