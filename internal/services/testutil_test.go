package services

import (
	"fmt"
	"strings"
	"testing"

	"fintrack_backend/database"
	"fintrack_backend/internal/auth"
	"fintrack_backend/internal/email"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database and migrates the
// full schema. cache=shared with a unique name keeps all pooled connections
// on the same database without leaking state between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newTestStorage returns local file storage rooted in a temp dir.
func newTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	files, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: t.TempDir(),
		BaseURL:  "/files",
	})
	require.NoError(t, err)
	return files
}

// fakeEmailProvider records outgoing mail instead of sending it.
type fakeEmailProvider struct {
	verificationURLs []string
	resetURLs        []string
}

func (f *fakeEmailProvider) Send(_ *email.Message) error { return nil }

func (f *fakeEmailProvider) SendVerification(_, verifyURL string) error {
	f.verificationURLs = append(f.verificationURLs, verifyURL)
	return nil
}

func (f *fakeEmailProvider) SendPasswordReset(_, resetURL string) error {
	f.resetURLs = append(f.resetURLs, resetURL)
	return nil
}

func (f *fakeEmailProvider) lastVerificationToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.verificationURLs, "no verification email captured")
	return tokenFromURL(f.verificationURLs[len(f.verificationURLs)-1])
}

func (f *fakeEmailProvider) lastResetToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.resetURLs, "no password reset email captured")
	return tokenFromURL(f.resetURLs[len(f.resetURLs)-1])
}

func tokenFromURL(u string) string {
	parts := strings.Split(u, "token=")
	return parts[len(parts)-1]
}

func newTestAuthService(mail *fakeEmailProvider) AuthService {
	return NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewVerificationTokenRepository(),
		repositories.NewPasswordResetTokenRepository(),
		repositories.NewRefreshTokenRepository(),
		mail,
		auth.NewTokenManager("test-secret", "HS256", 30),
		"http://localhost:3000",
		7,
	)
}

// createVerifiedUser inserts a verified user with a bcrypt password hash.
func createVerifiedUser(t *testing.T, db *gorm.DB, emailAddr, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		FullName:     "Test User",
		IsVerified:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
