package taxcalc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Recommendation is one concrete instrument that can fill a deduction gap.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Suggestion reports unused headroom under one deduction section. A nil
// MaxLimit means the section has no statutory cap.
type Suggestion struct {
	Section         string           `json:"section"`
	Description     string           `json:"description"`
	CurrentAmount   decimal.Decimal  `json:"current_amount"`
	MaxLimit        *decimal.Decimal `json:"max_limit,omitempty"`
	RemainingLimit  *decimal.Decimal `json:"remaining_limit,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// RegimeComparison holds the same computation run under both regimes.
// Savings is how much switching to the new regime saves; zero when the old
// regime is already cheaper.
type RegimeComparison struct {
	OldRegime    Result          `json:"old_regime"`
	NewRegime    Result          `json:"new_regime"`
	Difference   decimal.Decimal `json:"difference"`
	BetterRegime Regime          `json:"better_regime"`
	Savings      decimal.Decimal `json:"savings"`
}

// SavingSuggestions lists sections where the claimed amounts leave headroom
// under the old-regime caps. Section 80E is suggested only when nothing is
// claimed there, since education loan interest has no upper limit.
func SavingSuggestions(current map[string]decimal.Decimal) []Suggestion {
	if current == nil {
		current = map[string]decimal.Decimal{}
	}

	suggestions := []Suggestion{}

	capped := func(section, description string, limit decimal.Decimal, recs []Recommendation) {
		claimed := current[section]
		if claimed.GreaterThanOrEqual(limit) {
			return
		}
		remaining := limit.Sub(claimed)
		suggestions = append(suggestions, Suggestion{
			Section:         section,
			Description:     description,
			CurrentAmount:   claimed,
			MaxLimit:        &limit,
			RemainingLimit:  &remaining,
			Recommendations: recs,
		})
	}

	capped("80C", "Tax deduction on investments like PPF, ELSS, NSC", cap80C, []Recommendation{
		{Name: "ELSS Mutual Funds", Description: "Equity Linked Savings Scheme with 3-year lock-in"},
		{Name: "PPF", Description: "Public Provident Fund with 15-year lock-in"},
		{Name: "NPS Tier-1", Description: "National Pension System contribution"},
		{Name: "Tax Saving FD", Description: "5-year tax-saving fixed deposits"},
	})
	capped("80D", "Health insurance premium", cap80D, []Recommendation{
		{Name: "Health Insurance", Description: "Medical insurance for self and family"},
		{Name: "Preventive Health Check-up", Description: "Up to 5,000 within the overall limit"},
	})
	capped("80CCD(1B)", "Additional deduction for NPS contribution", cap80CCD1B, []Recommendation{
		{Name: "NPS Tier-1", Description: "Additional contribution to National Pension System"},
	})
	capped("24B", "Interest on housing loan", cap24B, []Recommendation{
		{Name: "Home Loan", Description: "Interest paid on housing loan for self-occupied property"},
	})

	if current["80E"].IsZero() {
		suggestions = append(suggestions, Suggestion{
			Section:       "80E",
			Description:   "Interest on education loan",
			CurrentAmount: decimal.Zero,
			Recommendations: []Recommendation{
				{Name: "Education Loan Interest", Description: "Interest paid on loan taken for higher education"},
			},
		})
	}

	return suggestions
}

// CompareRegimes runs the calculation under both regimes for the same income
// and deduction set.
func (c *Calculator) CompareRegimes(income decimal.Decimal, age int, deductions map[string]decimal.Decimal) RegimeComparison {
	oldResult := c.Calculate(Input{GrossIncome: income, Age: age, Regime: RegimeOld, Deductions: deductions})
	newResult := c.Calculate(Input{GrossIncome: income, Age: age, Regime: RegimeNew, Deductions: deductions})

	diff := oldResult.TotalTaxLiability.Sub(newResult.TotalTaxLiability)
	better := RegimeOld
	if diff.IsPositive() {
		better = RegimeNew
	}

	return RegimeComparison{
		OldRegime:    oldResult,
		NewRegime:    newResult,
		Difference:   diff.Abs(),
		BetterRegime: better,
		Savings:      decimal.Max(decimal.Zero, diff),
	}
}

// FiscalYearBounds returns the first and last instant of a fiscal year given
// in "YYYY-YY" form. The Indian fiscal year runs April 1 to March 31.
func FiscalYearBounds(fiscalYear string) (time.Time, time.Time, error) {
	var startYear, endSuffix int
	if _, err := fmt.Sscanf(fiscalYear, "%4d-%2d", &startYear, &endSuffix); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid fiscal year %q: %w", fiscalYear, err)
	}
	if (startYear+1)%100 != endSuffix {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid fiscal year %q: years are not consecutive", fiscalYear)
	}

	start := time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, time.March, 31, 23, 59, 59, 0, time.UTC)
	return start, end, nil
}
