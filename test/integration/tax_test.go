package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxReturnLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "taxreturn@integration.test", "some_password_1")

	createRes, createBody := ts.SendRequest(t, "POST", "/api/v1/tax/returns", token, map[string]interface{}{
		"fiscal_year":        "2024-25",
		"gross_total_income": "1200000",
	})
	require.Equal(t, http.StatusCreated, createRes.StatusCode, createBody)
	assert.Contains(t, createBody, `"draft"`)
	assert.Contains(t, createBody, "ITR-1")

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(createBody), &created))

	// The same fiscal year cannot be opened twice.
	dupRes, _ := ts.SendRequest(t, "POST", "/api/v1/tax/returns", token, map[string]interface{}{
		"fiscal_year": "2024-25",
	})
	assert.Equal(t, http.StatusConflict, dupRes.StatusCode)

	// Deductions roll up into the return.
	dedRes, dedBody := ts.SendRequest(t, "POST", "/api/v1/tax/returns/"+created.ID+"/deductions", token, map[string]interface{}{
		"section":     "80C",
		"description": "ELSS investment",
		"amount":      "150000",
	})
	require.Equal(t, http.StatusCreated, dedRes.StatusCode, dedBody)

	getRes, getBody := ts.SendRequest(t, "GET", "/api/v1/tax/returns/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode)
	assert.Contains(t, getBody, "150000")

	// Filing stamps the filing date.
	updRes, updBody := ts.SendRequest(t, "PUT", "/api/v1/tax/returns/"+created.ID, token, map[string]interface{}{
		"filing_status":         "filed",
		"acknowledgment_number": "ACK987654321",
	})
	assert.Equal(t, http.StatusOK, updRes.StatusCode)
	assert.Contains(t, updBody, `"filed"`)
	assert.Contains(t, updBody, "filing_date")
	assert.Contains(t, updBody, "ACK987654321")
}

func TestTaxReturn_InvalidFiscalYear(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "badfy@integration.test", "some_password_1")

	res, body := ts.SendRequest(t, "POST", "/api/v1/tax/returns", token, map[string]interface{}{
		"fiscal_year": "2024-2025",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "fiscal_year")
}

func TestTaxCalculate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "taxcalc@integration.test", "some_password_1")

	res, body := ts.SendRequest(t, "POST", "/api/v1/tax/calculate", token, map[string]interface{}{
		"gross_income": "1000000",
		"age":          30,
		"regime":       "old",
		"deductions": map[string]interface{}{
			"80C":      "150000",
			"standard": "50000",
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var result struct {
		TaxableIncome     string `json:"taxable_income"`
		TotalTaxLiability string `json:"total_tax_liability"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "800000", result.TaxableIncome)
	assert.Equal(t, "75400", result.TotalTaxLiability)
}

func TestDetermineITRForm(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "itrform@integration.test", "some_password_1")

	res, body := ts.SendRequest(t, "POST", "/api/v1/tax/itr-form", token, map[string]interface{}{
		"income_sources":    []string{"salary", "business"},
		"has_business_income": true,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ITR-3")
}

func TestTaxSavingSuggestions(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "suggest@integration.test", "some_password_1")

	createRes, createBody := ts.SendRequest(t, "POST", "/api/v1/tax/returns", token, map[string]interface{}{
		"fiscal_year": "2024-25",
	})
	require.Equal(t, http.StatusCreated, createRes.StatusCode, createBody)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(createBody), &created))

	dedRes, _ := ts.SendRequest(t, "POST", "/api/v1/tax/returns/"+created.ID+"/deductions", token, map[string]interface{}{
		"section":     "80C",
		"description": "PPF deposit",
		"amount":      "100000",
	})
	require.Equal(t, http.StatusCreated, dedRes.StatusCode)

	res, body := ts.SendRequest(t, "GET", "/api/v1/tax/saving-suggestions?fiscal_year=2024-25", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var suggestions []struct {
		Section        string `json:"section"`
		CurrentAmount  string `json:"current_amount"`
		RemainingLimit string `json:"remaining_limit"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &suggestions))

	var found bool
	for _, s := range suggestions {
		if s.Section == "80C" {
			found = true
			assert.Equal(t, "100000", s.CurrentAmount)
			assert.Equal(t, "50000", s.RemainingLimit)
		}
	}
	assert.True(t, found, "expected an 80C suggestion in %s", body)
	assert.Contains(t, body, "80E")
}

func TestTaxSummary(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "taxsummary@integration.test", "some_password_1")

	txnRes, txnBody := ts.SendRequest(t, "POST", "/api/v1/transactions", token, map[string]interface{}{
		"amount":           "500000",
		"description":      "Annual salary credit",
		"transaction_date": "2024-06-01T00:00:00Z",
		"transaction_type": "credit",
	})
	require.Equal(t, http.StatusCreated, txnRes.StatusCode, txnBody)

	res, body := ts.SendRequest(t, "GET", "/api/v1/tax/summary?fiscal_year=2024-25", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var summary struct {
		FiscalYear      string `json:"fiscal_year"`
		TotalIncome     string `json:"total_income"`
		TaxReturnStatus string `json:"tax_return_status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &summary))
	assert.Equal(t, "2024-25", summary.FiscalYear)
	assert.Equal(t, "500000", summary.TotalIncome)
	assert.Equal(t, "not_filed", summary.TaxReturnStatus)
}

func TestTaxCompareRegimes(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "regimes@integration.test", "some_password_1")

	res, body := ts.SendRequest(t, "POST", "/api/v1/tax/compare-regimes", token, map[string]interface{}{
		"gross_income": "1000000",
		"age":          30,
		"deductions": map[string]interface{}{
			"80C":      "150000",
			"standard": "50000",
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var comparison struct {
		BetterRegime string `json:"better_regime"`
		Difference   string `json:"difference"`
		Savings      string `json:"savings"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &comparison))
	assert.Equal(t, "old", comparison.BetterRegime)
	assert.Equal(t, "2600", comparison.Difference)
	assert.Equal(t, "0", comparison.Savings)
}
