package services

import (
	"careassoc_backend/internal/email"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/storage"
	appvalidator "careassoc_backend/internal/validator"
)

// ServiceContainer wires every service with its repositories and shared
// collaborators.
type ServiceContainer struct {
	Auth        AuthService
	Profile     ProfileService
	Onboarding  OnboardingService
	Caregiver   CaregiverService
	Institution InstitutionService
	Document    DocumentService
}

func NewServiceContainer(store storage.Storage, emailProvider email.Provider, v *appvalidator.Validator) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	educationRepo := repositories.NewEducationRepository()
	docRepo := repositories.NewDocumentRepository()

	return &ServiceContainer{
		Auth:        NewAuthService(userRepo, profileRepo, emailProvider),
		Profile:     NewProfileService(userRepo, profileRepo),
		Onboarding:  NewOnboardingService(profileRepo),
		Caregiver:   NewCaregiverService(profileRepo, educationRepo, v),
		Institution: NewInstitutionService(profileRepo, v),
		Document:    NewDocumentService(docRepo, educationRepo, profileRepo, store),
	}
}
