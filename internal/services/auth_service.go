package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"careassoc_backend/internal/auth"
	"careassoc_backend/internal/config"
	"careassoc_backend/internal/email"
	"careassoc_backend/internal/logger"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	OAuthRedirectURL(provider string) (string, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		emailProvider: emailProvider,
	}
}

// Register creates the account and its empty core profile row. The role is
// assigned here and is not changed by the profile forms afterwards.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              req.Role,
		Status:            models.UserStatusPending,
		IsVerified:        false,
		VerificationToken: generateRandomToken(),
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	// Seed the core profile so the account gate always has a row to judge.
	// Only the name and role are known at this point.
	profile := &models.Profile{
		UserID:   user.ID,
		FullName: req.FullName,
		Role:     user.Role,
	}
	if err := s.profileRepo.Upsert(db, profile); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user.Email, req.FullName, user.VerificationToken)

	return nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old token is spent regardless of what happens next.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	if s.emailProvider != nil {
		if err := s.emailProvider.SendWelcome(user.Email, user.Email, string(user.Role)); err != nil {
			logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
		}
	}

	return nil
}

// OAuthRedirectURL returns the configured authorize URL for the provider.
func (s *AuthServiceImpl) OAuthRedirectURL(provider string) (string, error) {
	cfg := config.GetConfig()
	url, ok := cfg.OAuth[provider]
	if !ok || url == "" {
		return "", apperrors.ErrUnknownOAuthProvider
	}
	return url, nil
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     generateRandomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User: &dto.UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			Role:       user.Role,
			Status:     user.Status,
			IsVerified: user.IsVerified,
		},
	}, nil
}

// sendVerificationEmail is best-effort: a mail outage must not block signup.
func (s *AuthServiceImpl) sendVerificationEmail(to, name, token string) {
	if s.emailProvider == nil {
		return
	}
	cfg := config.GetConfig()
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", cfg.Email.BaseURL, token)
	if err := s.emailProvider.SendVerification(to, name, verifyURL); err != nil {
		logger.Warn("failed to send verification email", "email", to, "error", err)
	}
}

func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}
