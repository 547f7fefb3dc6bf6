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

// CaregiverSteps defines the caregiver registration wizard. Field names are
// the json keys of dto.CaregiverFormRequest.
func CaregiverSteps() []wizard.Step {
	return []wizard.Step{
		{
			Name: "Professional background",
			Fields: []string{
				"profession", "specialty", "certification_level", "licence_number",
			},
		},
		{
			Name: "Address and emergency contact",
			Fields: []string{
				"country", "state", "city", "street",
				"emergency_contact_name", "emergency_contact_phone",
			},
		},
		{
			Name: "Availability and documents",
			Fields: []string{
				"availability", "profile_picture_url", "government_id_url",
				"resume_url", "certification_urls",
			},
		},
	}
}

type CaregiverService interface {
	GetForm(db *gorm.DB, userID string) (*dto.CaregiverFormSeed, error)
	ValidateStep(index int, form *dto.CaregiverFormRequest) (*dto.StepValidationResponse, error)
	Submit(db *gorm.DB, userID string, form *dto.CaregiverFormRequest) (map[string]string, wizard.Banner, error)

	AddEducationRecord(db *gorm.DB, userID string, req *dto.EducationRecordRequest) (*models.EducationRecord, error)
	ListEducationRecords(db *gorm.DB, userID string) ([]models.EducationRecord, error)
	DeleteEducationRecord(db *gorm.DB, userID, recordID string) error
}

type CaregiverServiceImpl struct {
	profileRepo   repositories.ProfileRepository
	educationRepo repositories.EducationRepository
	validator     *appvalidator.Validator
}

func NewCaregiverService(
	profileRepo repositories.ProfileRepository,
	educationRepo repositories.EducationRepository,
	v *appvalidator.Validator,
) CaregiverService {
	return &CaregiverServiceImpl{
		profileRepo:   profileRepo,
		educationRepo: educationRepo,
		validator:     v,
	}
}

// GetForm re-seeds the form values from the last persisted profile, if any.
func (s *CaregiverServiceImpl) GetForm(db *gorm.DB, userID string) (*dto.CaregiverFormSeed, error) {
	profile, err := s.profileRepo.FindCaregiverByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return &dto.CaregiverFormSeed{Exists: false, Form: &dto.CaregiverFormRequest{}}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.CaregiverFormSeed{
		Exists: true,
		Form: &dto.CaregiverFormRequest{
			Profession:            profile.Profession,
			Specialty:             profile.Specialty,
			CertificationLevel:    profile.CertificationLevel,
			LicenceNumber:         profile.LicenceNumber,
			Country:               profile.Country,
			State:                 profile.State,
			City:                  profile.City,
			Street:                profile.Street,
			EmergencyContactName:  profile.EmergencyContactName,
			EmergencyContactPhone: profile.EmergencyContactPhone,
			Availability:          string(profile.Availability),
			ProfilePictureURL:     profile.ProfilePictureURL,
			GovernmentIDURL:       profile.GovernmentIDURL,
			ResumeURL:             profile.ResumeURL,
			CertificationURLs:     string(profile.CertificationURLs),
		},
	}, nil
}

// ValidateStep checks one wizard step against the full form values.
func (s *CaregiverServiceImpl) ValidateStep(index int, form *dto.CaregiverFormRequest) (*dto.StepValidationResponse, error) {
	w := wizard.New(CaregiverSteps(), s.validator)
	ok, fieldErrors, err := w.ValidateStep(index, form)
	if err != nil {
		if apperrors.Is(err, wizard.ErrUnknownStep) {
			return nil, apperrors.NewBadRequestError("Unknown step index")
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.StepValidationResponse{Valid: ok, FieldErrors: fieldErrors}, nil
}

// Submit walks the wizard front to back so no step is skipped, then persists
// the profile via upsert keyed on the user id and closes the onboarding gate.
func (s *CaregiverServiceImpl) Submit(db *gorm.DB, userID string, form *dto.CaregiverFormRequest) (map[string]string, wizard.Banner, error) {
	w := wizard.New(CaregiverSteps(), s.validator)

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
		profile, terr := s.toModel(userID, form)
		if terr != nil {
			return terr
		}
		if uerr := s.profileRepo.UpsertCaregiver(db, profile); uerr != nil {
			return uerr
		}
		return s.profileRepo.SetOnboarded(db, userID)
	})
	if err != nil {
		return nil, w.Banner(), apperrors.GatewayError(err)
	}
	return fieldErrors, w.Banner(), nil
}

// toModel transforms the validated form into the row, parsing the JSON-text
// sub-fields. A parse failure fails the whole submission with a field-scoped
// message.
func (s *CaregiverServiceImpl) toModel(userID string, form *dto.CaregiverFormRequest) (*models.CaregiverProfile, error) {
	var availability map[string][]string
	if err := json.Unmarshal([]byte(form.Availability), &availability); err != nil {
		return nil, &appvalidator.ValidationError{
			Errors: map[string]string{"availability": "Must be a JSON object of weekday to time windows"},
		}
	}
	availabilityRaw, _ := json.Marshal(availability)

	certURLsJSON := datatypes.JSON("[]")
	if form.CertificationURLs != "" {
		var certURLs []string
		if err := json.Unmarshal([]byte(form.CertificationURLs), &certURLs); err != nil {
			return nil, &appvalidator.ValidationError{
				Errors: map[string]string{"certification_urls": "Must be a JSON array of URLs"},
			}
		}
		certURLsRaw, _ := json.Marshal(certURLs)
		certURLsJSON = datatypes.JSON(certURLsRaw)
	}

	return &models.CaregiverProfile{
		UserID:                userID,
		Profession:            form.Profession,
		Specialty:             form.Specialty,
		CertificationLevel:    form.CertificationLevel,
		LicenceNumber:         form.LicenceNumber,
		Country:               form.Country,
		State:                 form.State,
		City:                  form.City,
		Street:                form.Street,
		EmergencyContactName:  form.EmergencyContactName,
		EmergencyContactPhone: form.EmergencyContactPhone,
		Availability:          datatypes.JSON(availabilityRaw),
		ProfilePictureURL:     form.ProfilePictureURL,
		GovernmentIDURL:       form.GovernmentIDURL,
		ResumeURL:             form.ResumeURL,
		CertificationURLs:     certURLsJSON,
	}, nil
}

func (s *CaregiverServiceImpl) AddEducationRecord(db *gorm.DB, userID string, req *dto.EducationRecordRequest) (*models.EducationRecord, error) {
	record := &models.EducationRecord{
		UserID:        userID,
		Institution:   req.Institution,
		Qualification: req.Qualification,
		FieldOfStudy:  req.FieldOfStudy,
		StartYear:     req.StartYear,
		EndYear:       req.EndYear,
	}
	if err := s.educationRepo.Create(db, record); err != nil {
		return nil, apperrors.GatewayError(err)
	}
	return record, nil
}

func (s *CaregiverServiceImpl) ListEducationRecords(db *gorm.DB, userID string) ([]models.EducationRecord, error) {
	records, err := s.educationRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return records, nil
}

func (s *CaregiverServiceImpl) DeleteEducationRecord(db *gorm.DB, userID, recordID string) error {
	record, err := s.educationRepo.FindByID(db, recordID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEducationRecordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if record.UserID != userID {
		return apperrors.NewForbiddenError("Education record belongs to another user")
	}
	if err := s.educationRepo.Delete(db, recordID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
