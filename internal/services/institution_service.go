package services

import (
	"encoding/json"

	"careassoc_backend/internal/models"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/services/dto"
	appvalidator "careassoc_backend/internal/validator"
	"careassoc_backend/internal/wizard"
	"careassoc_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InstitutionSteps defines the institution registration wizard. Field names
// are the json keys of dto.InstitutionFormRequest.
func InstitutionSteps() []wizard.Step {
	return []wizard.Step{
		{
			Name: "Organization",
			Fields: []string{
				"institution_name", "institution_type", "years_in_operation", "bio",
			},
		},
		{
			Name: "Contact and address",
			Fields: []string{
				"contact_email", "contact_phone", "website",
				"country", "state", "city", "street",
			},
		},
		{
			Name: "Documents and details",
			Fields: []string{
				"logo_url", "registration_doc_url", "license_doc_url",
				"accreditation_doc_url", "details", "location",
			},
		},
	}
}

type InstitutionService interface {
	GetForm(db *gorm.DB, userID string) (*dto.InstitutionFormSeed, error)
	GetProfile(db *gorm.DB, userID string) (*models.InstitutionProfile, error)
	ValidateStep(index int, form *dto.InstitutionFormRequest) (*dto.StepValidationResponse, error)
	Submit(db *gorm.DB, userID string, form *dto.InstitutionFormRequest) (map[string]string, wizard.Banner, error)
}

type InstitutionServiceImpl struct {
	profileRepo repositories.ProfileRepository
	validator   *appvalidator.Validator
}

func NewInstitutionService(
	profileRepo repositories.ProfileRepository,
	v *appvalidator.Validator,
) InstitutionService {
	return &InstitutionServiceImpl{
		profileRepo: profileRepo,
		validator:   v,
	}
}

func (s *InstitutionServiceImpl) GetForm(db *gorm.DB, userID string) (*dto.InstitutionFormSeed, error) {
	profile, err := s.profileRepo.FindInstitutionByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return &dto.InstitutionFormSeed{Exists: false, Form: &dto.InstitutionFormRequest{}}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.InstitutionFormSeed{
		Exists: true,
		Form: &dto.InstitutionFormRequest{
			InstitutionName:     profile.InstitutionName,
			InstitutionType:     profile.InstitutionType,
			YearsInOperation:    profile.YearsInOperation,
			Bio:                 profile.Bio,
			ContactEmail:        profile.ContactEmail,
			ContactPhone:        profile.ContactPhone,
			Website:             profile.Website,
			Country:             profile.Country,
			State:               profile.State,
			City:                profile.City,
			Street:              profile.Street,
			LogoURL:             profile.LogoURL,
			RegistrationDocURL:  profile.RegistrationDocURL,
			LicenseDocURL:       profile.LicenseDocURL,
			AccreditationDocURL: profile.AccreditationDocURL,
			Details:             string(profile.Details),
			Location:            string(profile.Location),
		},
	}, nil
}

func (s *InstitutionServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.InstitutionProfile, error) {
	profile, err := s.profileRepo.FindInstitutionByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *InstitutionServiceImpl) ValidateStep(index int, form *dto.InstitutionFormRequest) (*dto.StepValidationResponse, error) {
	w := wizard.New(InstitutionSteps(), s.validator)
	ok, fieldErrors, err := w.ValidateStep(index, form)
	if err != nil {
		if apperrors.Is(err, wizard.ErrUnknownStep) {
			return nil, apperrors.NewBadRequestError("Unknown step index")
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.StepValidationResponse{Valid: ok, FieldErrors: fieldErrors}, nil
}

func (s *InstitutionServiceImpl) Submit(db *gorm.DB, userID string, form *dto.InstitutionFormRequest) (map[string]string, wizard.Banner, error) {
	w := wizard.New(InstitutionSteps(), s.validator)

	for !w.AtTerminal() {
		moved, fieldErrors, err := w.Advance(form)
		if err != nil {
			return nil, w.Banner(), apperrors.InternalError(err)
		}
		if !moved {
			return fieldErrors, w.Banner(), nil
		}
	}

	fieldErrors, err := w.Submit(form, func() error {
		profile, terr := s.toModel(db, userID, form)
		if terr != nil {
			return terr
		}
		if uerr := s.profileRepo.UpsertInstitution(db, profile); uerr != nil {
			return uerr
		}
		return s.profileRepo.SetOnboarded(db, userID)
	})
	if err != nil {
		return nil, w.Banner(), apperrors.GatewayError(err)
	}
	return fieldErrors, w.Banner(), nil
}

func (s *InstitutionServiceImpl) toModel(db *gorm.DB, userID string, form *dto.InstitutionFormRequest) (*models.InstitutionProfile, error) {
	detailsJSON, err := parseJSONText(form.Details, "details", "Must be a JSON object")
	if err != nil {
		return nil, err
	}
	locationJSON, err := parseJSONText(form.Location, "location", "Must be a JSON object")
	if err != nil {
		return nil, err
	}

	// Resubmission must not reset a reviewed application back to pending.
	status := models.InstitutionStatusPending
	if existing, ferr := s.profileRepo.FindInstitutionByUserID(db, userID); ferr == nil {
		status = existing.Status
	}

	return &models.InstitutionProfile{
		UserID:              userID,
		InstitutionName:     form.InstitutionName,
		InstitutionType:     form.InstitutionType,
		YearsInOperation:    form.YearsInOperation,
		Bio:                 form.Bio,
		Status:              status,
		ContactEmail:        form.ContactEmail,
		ContactPhone:        form.ContactPhone,
		Website:             form.Website,
		Country:             form.Country,
		State:               form.State,
		City:                form.City,
		Street:              form.Street,
		LogoURL:             form.LogoURL,
		RegistrationDocURL:  form.RegistrationDocURL,
		LicenseDocURL:       form.LicenseDocURL,
		AccreditationDocURL: form.AccreditationDocURL,
		Details:             detailsJSON,
		Location:            locationJSON,
	}, nil
}

// parseJSONText validates a free-form JSON object field, returning a
// field-scoped validation error when the text does not parse.
func parseJSONText(text, field, message string) (datatypes.JSON, error) {
	if text == "" {
		return datatypes.JSON("{}"), nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, &appvalidator.ValidationError{Errors: map[string]string{field: message}}
	}
	raw, _ := json.Marshal(obj)
	return datatypes.JSON(raw), nil
}
