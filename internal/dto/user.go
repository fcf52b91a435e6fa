package dto

import "time"

// UpdateProfileRequest uses pointers so absent fields are left untouched.
// Email and password are changed through their own dedicated flows.
type UpdateProfileRequest struct {
	FullName     *string    `json:"full_name" validate:"omitempty,min=1,max=255"`
	Phone        *string    `json:"phone" validate:"omitempty,max=20"`
	PANNumber    *string    `json:"pan_number" validate:"omitempty,pan"`
	AadharNumber *string    `json:"aadhar_number" validate:"omitempty,aadhar"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	Address      *string    `json:"address" validate:"omitempty,max=500"`
}

type PreferencesRequest struct {
	NotificationEnabled *bool                  `json:"notification_enabled"`
	DashboardLayout     map[string]interface{} `json:"dashboard_layout"`
	DefaultView         *string                `json:"default_view" validate:"omitempty,max=50"`
	PreferredLanguage   *string                `json:"preferred_language" validate:"omitempty,max=10"`
}

type PreferencesResponse struct {
	NotificationEnabled bool                   `json:"notification_enabled"`
	DashboardLayout     map[string]interface{} `json:"dashboard_layout,omitempty"`
	DefaultView         string                 `json:"default_view"`
	PreferredLanguage   string                 `json:"preferred_language"`
}
