package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack_backend/internal/models"
	"fintrack_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow registers a user and checks that login is refused until the
// email is verified.
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	registerBody := map[string]interface{}{
		"email":     "flow@integration.test",
		"password":  "super_password123",
		"full_name": "Flow User",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "verify your account")

	loginBody := map[string]interface{}{
		"email":    "flow@integration.test",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusForbidden, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "not verified")

	// Verify with the stored token, then log in for real.
	var user models.User
	require.NoError(t, ts.DB.First(&user, "email = ?", "flow@integration.test").Error)
	var token models.VerificationToken
	require.NoError(t, ts.DB.First(&token, "user_id = ?", user.ID).Error)

	verRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/verify-email", "", map[string]interface{}{
		"token": token.Token,
	})
	assert.Equal(t, http.StatusOK, verRes.StatusCode)

	logRes, logBodyStr = ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "access_token")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	helpers.CreateVerifiedUser(t, ts.DB, "duplicate@integration.test", "some_password_1")

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"email":     "duplicate@integration.test",
		"password":  "password_is_long_enough_123",
		"full_name": "Second User",
	})

	assert.Equal(t, http.StatusConflict, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "Email already exists")
}

func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	helpers.CreateVerifiedUser(t, ts.DB, "badpass@integration.test", "correct_password")

	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "badpass@integration.test",
		"password": "WRONG_password",
	})

	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "Invalid email or password")
}

func TestRefreshAndLogout(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	helpers.CreateVerifiedUser(t, ts.DB, "session@integration.test", "correct_password")

	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "session@integration.test",
		"password": "correct_password",
	})
	require.Equal(t, http.StatusOK, logRes.StatusCode)

	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBodyStr), &login))

	refRes, refBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, refRes.StatusCode)
	assert.Contains(t, refBodyStr, "access_token")

	// The old refresh token was rotated away.
	refRes, _ = ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, refRes.StatusCode)

	var rotated struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(refBodyStr), &rotated))

	outRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/logout", "", map[string]interface{}{
		"refresh_token": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, outRes.StatusCode)

	refRes, _ = ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, refRes.StatusCode)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/users/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGetProfile_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, "profile@integration.test", "some_password_1")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
	assert.Contains(t, bodyStr, user.FullName)
}
