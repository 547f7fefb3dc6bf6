package repositories

import (
	"errors"

	"careassoc_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	// Core profile
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Upsert(db *gorm.DB, profile *models.Profile) error
	SetOnboarded(db *gorm.DB, userID string) error

	// Caregiver profile
	FindCaregiverByUserID(db *gorm.DB, userID string) (*models.CaregiverProfile, error)
	UpsertCaregiver(db *gorm.DB, profile *models.CaregiverProfile) error
	HasCaregiver(db *gorm.DB, userID string) (bool, error)

	// Institution profile
	FindInstitutionByUserID(db *gorm.DB, userID string) (*models.InstitutionProfile, error)
	UpsertInstitution(db *gorm.DB, profile *models.InstitutionProfile) error
	HasInstitution(db *gorm.DB, userID string) (bool, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

// upsertByUserID inserts the row or, when a row for the same user_id already
// exists, updates it in place. Keeps the one-row-per-user invariant without a
// separate read.
func upsertByUserID(db *gorm.DB, value interface{}, columns []string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(value).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Upsert(db *gorm.DB, profile *models.Profile) error {
	return upsertByUserID(db, profile, []string{
		"full_name", "phone", "gender", "date_of_birth", "location",
		"role", "staff_id", "avatar_path",
	})
}

// SetOnboarded flips the onboarded flag. There is no inverse operation: once a
// user has been marked onboarded the flag never goes back.
func (r *ProfileRepositoryImpl) SetOnboarded(db *gorm.DB, userID string) error {
	return db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("onboarded", true).Error
}

func (r *ProfileRepositoryImpl) FindCaregiverByUserID(db *gorm.DB, userID string) (*models.CaregiverProfile, error) {
	var profile models.CaregiverProfile
	if err := db.Preload("EducationRecords").First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpsertCaregiver(db *gorm.DB, profile *models.CaregiverProfile) error {
	return upsertByUserID(db, profile, []string{
		"profession", "specialty", "certification_level", "licence_number",
		"country", "state", "city", "street",
		"emergency_contact_name", "emergency_contact_phone",
		"availability", "profile_picture_url", "government_id_url",
		"resume_url", "certification_urls",
	})
}

func (r *ProfileRepositoryImpl) HasCaregiver(db *gorm.DB, userID string) (bool, error) {
	var count int64
	if err := db.Model(&models.CaregiverProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProfileRepositoryImpl) FindInstitutionByUserID(db *gorm.DB, userID string) (*models.InstitutionProfile, error) {
	var profile models.InstitutionProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpsertInstitution(db *gorm.DB, profile *models.InstitutionProfile) error {
	return upsertByUserID(db, profile, []string{
		"institution_name", "institution_type", "years_in_operation", "bio",
		"status", "contact_email", "contact_phone", "website",
		"country", "state", "city", "street",
		"logo_url", "registration_doc_url", "license_doc_url",
		"accreditation_doc_url", "details", "location",
	})
}

func (r *ProfileRepositoryImpl) HasInstitution(db *gorm.DB, userID string) (bool, error) {
	var count int64
	if err := db.Model(&models.InstitutionProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
