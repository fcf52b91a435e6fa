package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/storage"
	"fintrack_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadProfileImage(ctx context.Context, db *gorm.DB, userID, filename, contentType string, reader io.Reader) (string, error)
	GetPreferences(ctx context.Context, db *gorm.DB, userID string) (*dto.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, db *gorm.DB, userID string, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	files    storage.Storage
}

func NewUserService(userRepo repositories.UserRepository, files storage.Storage) UserService {
	return &UserServiceImpl{userRepo: userRepo, files: files}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

// UpdateProfile builds the column map from the request explicitly. Email,
// password and verification state are not reachable from this endpoint.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.PANNumber != nil {
		fields["pan_number"] = *req.PANNumber
	}
	if req.AadharNumber != nil {
		fields["aadhar_number"] = *req.AadharNumber
	}
	if req.DateOfBirth != nil {
		fields["date_of_birth"] = *req.DateOfBirth
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	if err := s.userRepo.UpdateProfile(db, userID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetProfile(ctx, db, userID)
}

func (s *UserServiceImpl) UploadProfileImage(ctx context.Context, db *gorm.DB, userID, filename, contentType string, reader io.Reader) (string, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.InternalError(err)
	}

	path := fmt.Sprintf("profiles/%s/%s", userID, storage.UniqueFilename(filename))
	if err := s.files.Save(ctx, path, reader, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.files.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateProfile(db, userID, map[string]interface{}{
		"profile_image_url": url,
	}); err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile image updated", "user_id", userID)
	return url, nil
}

func (s *UserServiceImpl) GetPreferences(ctx context.Context, db *gorm.DB, userID string) (*dto.PreferencesResponse, error) {
	pref, err := s.userRepo.FindPreferences(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// No row yet means defaults.
			return &dto.PreferencesResponse{
				NotificationEnabled: true,
				DefaultView:         "dashboard",
				PreferredLanguage:   "en",
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return buildPreferencesResponse(pref), nil
}

func (s *UserServiceImpl) UpdatePreferences(ctx context.Context, db *gorm.DB, userID string, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error) {
	pref, err := s.userRepo.FindPreferences(db, userID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		pref = &models.UserPreference{
			UserID:              userID,
			NotificationEnabled: true,
			DefaultView:         "dashboard",
			PreferredLanguage:   "en",
		}
	}

	if req.NotificationEnabled != nil {
		pref.NotificationEnabled = *req.NotificationEnabled
	}
	if req.DashboardLayout != nil {
		raw, err := json.Marshal(req.DashboardLayout)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"dashboard_layout": "must be a JSON object"})
		}
		pref.DashboardLayout = datatypes.JSON(raw)
	}
	if req.DefaultView != nil {
		pref.DefaultView = *req.DefaultView
	}
	if req.PreferredLanguage != nil {
		pref.PreferredLanguage = *req.PreferredLanguage
	}

	if err := s.userRepo.SavePreferences(db, pref); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildPreferencesResponse(pref), nil
}

func buildPreferencesResponse(pref *models.UserPreference) *dto.PreferencesResponse {
	resp := &dto.PreferencesResponse{
		NotificationEnabled: pref.NotificationEnabled,
		DefaultView:         pref.DefaultView,
		PreferredLanguage:   pref.PreferredLanguage,
	}
	if len(pref.DashboardLayout) > 0 {
		var layout map[string]interface{}
		if err := json.Unmarshal(pref.DashboardLayout, &layout); err == nil {
			resp.DashboardLayout = layout
		}
	}
	return resp
}
