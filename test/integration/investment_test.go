package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededInvestmentTypeID(t *testing.T, ts *helpers.TestServer, token, name string) string {
	t.Helper()

	res, body := ts.SendRequest(t, "GET", "/api/v1/investments/types", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var types []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &types))
	for _, it := range types {
		if it.Name == name {
			return it.ID
		}
	}
	t.Fatalf("seeded investment type %q not found in: %s", name, body)
	return ""
}

func TestInvestmentLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "invest@integration.test", "some_password_1")

	typeID := seededInvestmentTypeID(t, ts, token, "Mutual Fund")

	createRes, createBody := ts.SendRequest(t, "POST", "/api/v1/investments", token, map[string]interface{}{
		"name":               "Bluechip Fund",
		"investment_type_id": typeID,
		"investment_date":    "2025-01-10T00:00:00Z",
		"initial_amount":     "50000",
		"units":              "1250.75",
		"is_tax_saving":      true,
		"tax_section":        "80C",
	})
	require.Equal(t, http.StatusCreated, createRes.StatusCode, createBody)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(createBody), &created))

	// The opening buy is recorded automatically.
	txnRes, txnBody := ts.SendRequest(t, "GET", "/api/v1/investments/"+created.ID+"/transactions", token, nil)
	assert.Equal(t, http.StatusOK, txnRes.StatusCode)
	assert.Contains(t, txnBody, `"buy"`)

	// A later buy moves the current value.
	addRes, _ := ts.SendRequest(t, "POST", "/api/v1/investments/"+created.ID+"/transactions", token, map[string]interface{}{
		"transaction_type": "buy",
		"transaction_date": "2025-03-10T00:00:00Z",
		"amount":           "10000",
	})
	require.Equal(t, http.StatusCreated, addRes.StatusCode)

	getRes, getBody := ts.SendRequest(t, "GET", "/api/v1/investments/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode)
	assert.Contains(t, getBody, "60000")

	sumRes, sumBody := ts.SendRequest(t, "GET", "/api/v1/investments/summary", token, nil)
	assert.Equal(t, http.StatusOK, sumRes.StatusCode)
	assert.Contains(t, sumBody, "Mutual Fund")
	assert.Contains(t, sumBody, "tax_saving_total")

	// Deactivate, then it disappears from the default active listing.
	updRes, _ := ts.SendRequest(t, "PUT", "/api/v1/investments/"+created.ID, token, map[string]interface{}{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, updRes.StatusCode)

	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/investments", token, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.NotContains(t, listBody, "Bluechip Fund")

	listRes, listBody = ts.SendRequest(t, "GET", "/api/v1/investments?active_only=false", token, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, "Bluechip Fund")
}

func TestInvestment_UnknownType(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "invtype@integration.test", "some_password_1")

	res, body := ts.SendRequest(t, "POST", "/api/v1/investments", token, map[string]interface{}{
		"name":               "Phantom",
		"investment_type_id": "00000000-0000-0000-0000-000000000000",
		"investment_date":    "2025-01-10T00:00:00Z",
		"initial_amount":     "100",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Investment type not found")
}
