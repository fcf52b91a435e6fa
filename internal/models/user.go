package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	FullName        string     `gorm:"size:255;not null" json:"full_name"`
	Phone           string     `gorm:"size:15" json:"phone"`
	PANNumber       string     `gorm:"column:pan_number;size:10;index" json:"pan_number"`
	AadharNumber    string     `gorm:"size:12;index" json:"aadhar_number"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Address         string     `gorm:"type:text" json:"address"`
	ProfileImageURL string     `gorm:"size:255" json:"profile_image_url"`
	IsVerified      bool       `gorm:"default:false" json:"is_verified"`
	LastLogin       *time.Time `json:"last_login"`

	// Relations
	Preferences        *UserPreference      `gorm:"foreignKey:UserID" json:"preferences,omitempty"`
	Transactions       []Transaction        `gorm:"foreignKey:UserID" json:"-"`
	BankAccounts       []BankAccount        `gorm:"foreignKey:UserID" json:"-"`
	Investments        []Investment         `gorm:"foreignKey:UserID" json:"-"`
	TaxReturns         []TaxReturn          `gorm:"foreignKey:UserID" json:"-"`
	Documents          []Document           `gorm:"foreignKey:UserID" json:"-"`
	VerificationTokens []VerificationToken  `gorm:"foreignKey:UserID" json:"-"`
	ResetTokens        []PasswordResetToken `gorm:"foreignKey:UserID" json:"-"`
	RefreshTokens      []RefreshToken       `gorm:"foreignKey:UserID" json:"-"`
}

type UserPreference struct {
	BaseModel
	UserID              string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	NotificationEnabled bool           `gorm:"default:true" json:"notification_enabled"`
	DashboardLayout     datatypes.JSON `json:"dashboard_layout"`
	DefaultView         string         `gorm:"size:50;default:'dashboard'" json:"default_view"`
	PreferredLanguage   string         `gorm:"size:50;default:'en'" json:"preferred_language"`
}
