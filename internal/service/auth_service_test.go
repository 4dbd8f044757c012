package service

import (
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureMailer records codes instead of sending mail
type captureMailer struct {
	to      string
	code    string
	purpose string
}

func (m *captureMailer) SendOTP(to, code, purpose string) error {
	m.to, m.code, m.purpose = to, code, purpose
	return nil
}

func newAuthService(t *testing.T, db *gorm.DB) (AuthService, *captureMailer) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	mailer := &captureMailer{}
	svc := NewAuthService(repository.NewUserRepo(db), repository.NewOtpRepo(db), mailer)
	return svc, mailer
}

func TestRegisterAndVerifyEmail(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newAuthService(t, db)

	user, err := svc.Register("owner@shop.test", "secret123", model.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.test", user.Email)
	assert.False(t, user.IsVerified)
	assert.Equal(t, "owner@shop.test", mailer.to)
	assert.Len(t, mailer.code, 6)

	// Login is blocked until the email is verified
	_, err = svc.Login("owner@shop.test", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	// A wrong code does not verify
	_, err = svc.VerifyEmail("owner@shop.test", "000000")
	assert.ErrorIs(t, err, ErrInvalidOtp)

	response, err := svc.VerifyEmail("owner@shop.test", mailer.code)
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.True(t, response.User.IsVerified)

	// Codes are single-use
	_, err = svc.VerifyEmail("owner@shop.test", mailer.code)
	assert.ErrorIs(t, err, ErrInvalidOtp)

	response, err = svc.Login("owner@shop.test", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
}

func TestRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)

	_, err := svc.Register("owner@shop.test", "secret123", "")
	require.NoError(t, err)

	_, err = svc.Register("owner@shop.test", "secret123", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register("other@shop.test", "short", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register("other@shop.test", "secret123", "SUPERADMIN")
	assert.Error(t, err)
}

func TestResendOtpInvalidatesPreviousCode(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newAuthService(t, db)

	_, err := svc.Register("owner@shop.test", "secret123", "")
	require.NoError(t, err)
	firstCode := mailer.code

	require.NoError(t, svc.ResendOtp("owner@shop.test"))
	require.NotEqual(t, "", mailer.code)

	if firstCode != mailer.code {
		_, err = svc.VerifyEmail("owner@shop.test", firstCode)
		assert.ErrorIs(t, err, ErrInvalidOtp)
	}

	_, err = svc.VerifyEmail("owner@shop.test", mailer.code)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResendOtp("owner@shop.test"), ErrAlreadyVerified)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newAuthService(t, db)

	_, err := svc.Register("owner@shop.test", "secret123", "")
	require.NoError(t, err)
	_, err = svc.VerifyEmail("owner@shop.test", mailer.code)
	require.NoError(t, err)

	_, err = svc.Login("owner@shop.test", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@shop.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	svc, mailer := newAuthService(t, db)

	_, err := svc.Register("owner@shop.test", "secret123", "")
	require.NoError(t, err)
	_, err = svc.VerifyEmail("owner@shop.test", mailer.code)
	require.NoError(t, err)

	// Unknown addresses are silently accepted
	require.NoError(t, svc.ForgotPassword("nobody@shop.test"))

	require.NoError(t, svc.ForgotPassword("owner@shop.test"))
	resetCode := mailer.code

	assert.ErrorIs(t, svc.ResetPassword("owner@shop.test", resetCode, "short"), ErrWeakPassword)
	assert.ErrorIs(t, svc.ResetPassword("owner@shop.test", "000000", "newsecret123"), ErrInvalidOtp)

	require.NoError(t, svc.ResetPassword("owner@shop.test", resetCode, "newsecret123"))

	// The old password is gone, the code is consumed
	_, err = svc.Login("owner@shop.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("owner@shop.test", "newsecret123")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ResetPassword("owner@shop.test", resetCode, "another123"), ErrInvalidOtp)
}

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newAuthService(t, db)
	user := seedUser(t, db)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, model.RoleCashier, profile.Role)
}
