package models

import "time"

// The three single-use/session token kinds live in separate tables rather
// than one table with a type column. A verification token can never be
// replayed against the password reset path because the lookup goes through a
// different table entirely.

// VerificationToken confirms ownership of an email address. Valid for 24
// hours, deleted on first successful use.
type VerificationToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// PasswordResetToken authorizes one password reset. Valid for 1 hour,
// deleted on first successful use.
type PasswordResetToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// RefreshToken backs a login session. Rotated on every refresh, removed on
// logout and on password reset.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
