package handlers

import (
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/storage"
	appvalidator "careassoc_backend/internal/validator"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth        *AuthHandler
	Account     *AccountHandler
	Caregiver   *CaregiverHandler
	Institution *InstitutionHandler
	Document    *DocumentHandler
	File        *FileHandler
}

func NewAppHandlers(svc *services.ServiceContainer, store storage.Storage, v *appvalidator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:        NewAuthHandler(base, svc.Auth),
		Account:     NewAccountHandler(base, svc.Onboarding, svc.Profile),
		Caregiver:   NewCaregiverHandler(base, svc.Caregiver, svc.Document),
		Institution: NewInstitutionHandler(base, svc.Institution, svc.Document),
		Document:    NewDocumentHandler(base, svc.Document),
		File:        NewFileHandler(base, store),
	}
}
