package repository

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const otpLifetime = 10 * time.Minute

type OtpRepository interface {
	// Create invalidates any live code of the same type for the user and
	// issues a fresh one.
	Create(userID uuid.UUID, otpType model.OtpType) (*model.OtpToken, error)
	// Verify consumes a live matching code; returns nil if none matches.
	Verify(userID uuid.UUID, code string, otpType model.OtpType) (*model.OtpToken, error)
	InvalidateAll(userID uuid.UUID) error
	Cleanup() error
}

type otpRepo struct {
	db *gorm.DB
}

func NewOtpRepo(db *gorm.DB) OtpRepository {
	return &otpRepo{db}
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (r *otpRepo) Create(userID uuid.UUID, otpType model.OtpType) (*model.OtpToken, error) {
	err := r.db.Model(&model.OtpToken{}).
		Where("user_id = ? AND type = ? AND used = ? AND expires_at > ?", userID, otpType, false, time.Now()).
		Update("used", true).Error
	if err != nil {
		return nil, err
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, err
	}

	otp := &model.OtpToken{
		UserID:    userID,
		Code:      code,
		Type:      otpType,
		ExpiresAt: time.Now().Add(otpLifetime),
	}
	if err := r.db.Create(otp).Error; err != nil {
		return nil, err
	}
	return otp, nil
}

func (r *otpRepo) Verify(userID uuid.UUID, code string, otpType model.OtpType) (*model.OtpToken, error) {
	var otp model.OtpToken
	err := r.db.
		Where("user_id = ? AND code = ? AND type = ? AND used = ? AND expires_at > ?",
			userID, code, otpType, false, time.Now()).
		First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := r.db.Model(&otp).Update("used", true).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepo) InvalidateAll(userID uuid.UUID) error {
	return r.db.Model(&model.OtpToken{}).Where("user_id = ?", userID).Update("used", true).Error
}

// Cleanup removes codes that expired more than an hour ago.
func (r *otpRepo) Cleanup() error {
	return r.db.Delete(&model.OtpToken{}, "expires_at < ?", time.Now().Add(-time.Hour)).Error
}
