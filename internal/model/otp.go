package model

import (
	"time"

	"github.com/google/uuid"
)

type OtpType string

const (
	OtpSignup        OtpType = "SIGNUP"
	OtpResetPassword OtpType = "RESET_PASSWORD"
)

// OtpToken is a single-use 6-digit verification code sent by email.
// Issuing a new code invalidates all previous live codes of the same type.
type OtpToken struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	Type      OtpType   `gorm:"type:varchar(20);not null" json:"type"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
