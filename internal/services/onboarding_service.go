package services

import (
	"careassoc_backend/internal/logger"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/onboarding"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type OnboardingService interface {
	// ResolveAccount decides where the account stands. The returned profile
	// is the form seed for the CoreIncomplete state, nil when no row exists.
	ResolveAccount(db *gorm.DB, userID string, authenticated bool) (onboarding.Decision, *models.Profile)
}

type OnboardingServiceImpl struct {
	profileRepo repositories.ProfileRepository
}

func NewOnboardingService(profileRepo repositories.ProfileRepository) OnboardingService {
	return &OnboardingServiceImpl{profileRepo: profileRepo}
}

// ResolveAccount gathers the routing facts and runs the router. Any lookup
// error fails closed to sign-in; the request ends and the next one
// re-evaluates from scratch.
func (s *OnboardingServiceImpl) ResolveAccount(db *gorm.DB, userID string, authenticated bool) (onboarding.Decision, *models.Profile) {
	if !authenticated {
		return onboarding.Resolve(onboarding.Input{}), nil
	}

	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil && !apperrors.Is(err, repositories.ErrProfileNotFound) {
		logger.Error("profile lookup failed during routing", "user_id", userID, "error", err)
		return onboarding.FailClosed(), nil
	}

	in := onboarding.Input{Authenticated: true, Profile: profile}

	// The role-profile probe only matters while the onboarded gate is open.
	if onboarding.IsCoreComplete(profile) && !profile.Onboarded && onboarding.RequiresRoleProfile(profile.Role) {
		has, probeErr := s.hasRoleProfile(db, userID, profile.Role)
		if probeErr != nil {
			logger.Error("role profile probe failed during routing", "user_id", userID, "error", probeErr)
			return onboarding.FailClosed(), nil
		}
		in.HasRoleProfile = has
	}

	return onboarding.Resolve(in), profile
}

func (s *OnboardingServiceImpl) hasRoleProfile(db *gorm.DB, userID string, role models.UserRole) (bool, error) {
	switch role {
	case models.UserRoleCaregiver:
		return s.profileRepo.HasCaregiver(db, userID)
	case models.UserRoleInstitution:
		return s.profileRepo.HasInstitution(db, userID)
	default:
		return true, nil
	}
}
