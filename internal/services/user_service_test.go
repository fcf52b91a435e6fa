package services

import (
	"bytes"
	"context"
	"testing"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) UserService {
	return NewUserService(repositories.NewUserRepository(), newTestStorage(t))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "profile@test.com", "some_password_1")

	name := "Priya Sharma"
	pan := "ABCDE1234F"
	updated, err := svc.UpdateProfile(ctx, db, user.ID, &dto.UpdateProfileRequest{
		FullName:  &name,
		PANNumber: &pan,
	})
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", updated.FullName)
	assert.Equal(t, "ABCDE1234F", updated.PANNumber)
	// The email is not reachable from the profile update.
	assert.Equal(t, "profile@test.com", updated.Email)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t)

	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), db, "00000000-0000-0000-0000-000000000000", &dto.UpdateProfileRequest{
		FullName: &name,
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUploadProfileImage(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "avatar@test.com", "some_password_1")

	url, err := svc.UploadProfileImage(ctx, db, user.ID, "avatar.png", "image/png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	profile, err := svc.GetProfile(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, url, profile.ProfileImageURL)
}

func TestPreferences_DefaultsAndUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "prefs@test.com", "some_password_1")

	// No stored row yet, defaults come back.
	prefs, err := svc.GetPreferences(ctx, db, user.ID)
	require.NoError(t, err)
	assert.True(t, prefs.NotificationEnabled)
	assert.Equal(t, "dashboard", prefs.DefaultView)
	assert.Equal(t, "en", prefs.PreferredLanguage)

	disabled := false
	view := "transactions"
	updated, err := svc.UpdatePreferences(ctx, db, user.ID, &dto.PreferencesRequest{
		NotificationEnabled: &disabled,
		DefaultView:         &view,
		DashboardLayout:     map[string]interface{}{"widgets": []interface{}{"spending", "portfolio"}},
	})
	require.NoError(t, err)
	assert.False(t, updated.NotificationEnabled)
	assert.Equal(t, "transactions", updated.DefaultView)

	// A second update touches the same row.
	lang := "hi"
	updated, err = svc.UpdatePreferences(ctx, db, user.ID, &dto.PreferencesRequest{
		PreferredLanguage: &lang,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", updated.PreferredLanguage)
	assert.False(t, updated.NotificationEnabled)
	assert.Contains(t, updated.DashboardLayout, "widgets")

	stored, err := svc.GetPreferences(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", stored.PreferredLanguage)
	assert.Equal(t, "transactions", stored.DefaultView)
}
