package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack_backend/internal/auth"
	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

// CreateVerifiedUser inserts an already verified user so tests can log in
// without walking the email verification flow.
func CreateVerifiedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Integration User",
		IsVerified:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// LoginUser logs in over HTTP and returns the access token.
func LoginUser(t *testing.T, ts *TestServer, email, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", res.StatusCode, body)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if parsed.AccessToken == "" {
		t.Fatalf("login response carried no access token: %s", body)
	}
	return parsed.AccessToken
}

// CreateAndLoginUser combines both steps and returns the token and user.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string) (string, *models.User) {
	t.Helper()
	user := CreateVerifiedUser(t, ts.DB, email, password)
	token := LoginUser(t, ts, email, password)
	return token, user
}
