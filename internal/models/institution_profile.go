package models

import (
	"gorm.io/datatypes"
)

// InstitutionProfile holds the institution-specific onboarding data, keyed
// 1:1 by the owning user id.
type InstitutionProfile struct {
	BaseModel
	UserID           string            `gorm:"uniqueIndex;not null" json:"user_id"`
	InstitutionName  string            `gorm:"not null" json:"institution_name"`
	InstitutionType  string            `json:"institution_type"`
	YearsInOperation int               `json:"years_in_operation"`
	Bio              string            `json:"bio"`
	Status           InstitutionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Website      string `json:"website"`

	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`

	LogoURL             string `json:"logo_url"`
	RegistrationDocURL  string `json:"registration_doc_url"`
	LicenseDocURL       string `json:"license_doc_url"`
	AccreditationDocURL string `json:"accreditation_doc_url"`

	// Free-form structured extras captured by the registration form.
	Details  datatypes.JSON `gorm:"type:jsonb" json:"details"`
	Location datatypes.JSON `gorm:"type:jsonb" json:"location"`
}
