package services

import (
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/onboarding"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*models.Profile, error)
	UpsertCoreProfile(db *gorm.DB, userID string, req *dto.CoreProfileRequest) (*models.Profile, error)
}

type ProfileServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// UpsertCoreProfile saves the common profile form. Roles without a
// role-specific form are fully onboarded once the common form is complete,
// so the one-way onboarded flag is set here for them; form-bearing roles get
// it on role-profile submission instead.
func (s *ProfileServiceImpl) UpsertCoreProfile(db *gorm.DB, userID string, req *dto.CoreProfileRequest) (*models.Profile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// The role was assigned at signup; the guest placeholder is the only
	// role the form may upgrade.
	if user.Role != models.UserRoleGuest && req.Role != user.Role {
		return nil, apperrors.ValidationError(map[string]string{"role": "Role cannot be changed"})
	}
	if user.Role == models.UserRoleGuest && req.Role != models.UserRoleGuest {
		user.Role = req.Role
		if err := s.userRepo.Update(db, user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	profile := &models.Profile{
		UserID:      userID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Location:    req.Location,
		Role:        user.Role,
		StaffID:     req.StaffID,
		AvatarPath:  req.AvatarPath,
	}
	if err := s.profileRepo.Upsert(db, profile); err != nil {
		return nil, apperrors.GatewayError(err)
	}

	if !onboarding.RequiresRoleProfile(user.Role) && onboarding.IsCoreComplete(profile) {
		if err := s.profileRepo.SetOnboarded(db, userID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(db, userID)
}
