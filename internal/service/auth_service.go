package service

import (
	"errors"
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOtp         = errors.New("invalid or expired verification code")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

// OtpSender delivers one-time codes to users (SMTP in production).
type OtpSender interface {
	SendOTP(to, code, purpose string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	// Register creates an unverified account and emails a signup OTP.
	Register(email, password, role string) (*model.UserResponse, error)
	// VerifyEmail consumes a signup OTP and issues the first session token.
	VerifyEmail(email, code string) (*LoginResponse, error)
	ResendOtp(email string) error
	Login(email, password string) (*LoginResponse, error)
	ForgotPassword(email string) error
	ResetPassword(email, code, newPassword string) error
	GetProfile(userID uuid.UUID) (*model.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OtpRepository
	mailer   OtpSender
}

func NewAuthService(userRepo repository.UserRepository, otpRepo repository.OtpRepository, mailer OtpSender) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailer:   mailer,
	}
}

func (s *authService) Register(email, password, role string) (*model.UserResponse, error) {
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	if role == "" {
		role = model.RoleOwner
	}
	if role != model.RoleOwner && role != model.RoleCashier {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email: email,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.sendOtp(user, model.OtpSignup); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

func (s *authService) VerifyEmail(email, code string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	otp, err := s.otpRepo.Verify(user.ID, code, model.OtpSignup)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, ErrInvalidOtp
	}

	if err := s.userRepo.MarkVerified(user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true

	return s.issueToken(user)
}

func (s *authService) ResendOtp(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	return s.sendOtp(user, model.OtpSignup)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}

	return s.issueToken(user)
}

func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// Do not reveal whether the address exists
		return nil
	}
	return s.sendOtp(user, model.OtpResetPassword)
}

func (s *authService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	otp, err := s.otpRepo.Verify(user.ID, code, model.OtpResetPassword)
	if err != nil {
		return err
	}
	if otp == nil {
		return ErrInvalidOtp
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.PasswordHash); err != nil {
		return err
	}

	// A password reset kills every outstanding code
	return s.otpRepo.InvalidateAll(user.ID)
}

func (s *authService) GetProfile(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *authService) sendOtp(user *model.User, otpType model.OtpType) error {
	otp, err := s.otpRepo.Create(user.ID, otpType)
	if err != nil {
		return err
	}

	purpose := "Email Verification"
	if otpType == model.OtpResetPassword {
		purpose = "Password Reset"
	}
	if err := s.mailer.SendOTP(user.Email, otp.Code, purpose); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

func (s *authService) issueToken(user *model.User) (*LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}
	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
