package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// CaregiverProfile holds the caregiver-specific onboarding data, keyed 1:1
// by the owning user id. Existence of this row means the caregiver has
// completed role-specific registration.
type CaregiverProfile struct {
	BaseModel
	UserID             string `gorm:"uniqueIndex;not null" json:"user_id"`
	Profession         string `gorm:"not null" json:"profession"`
	Specialty          string `json:"specialty"`
	CertificationLevel string `json:"certification_level"`
	LicenceNumber      string `json:"licence_number"`

	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	// Availability maps weekday to time windows, e.g. {"monday": ["08:00-12:00"]}
	Availability datatypes.JSON `gorm:"type:jsonb" json:"availability"`

	ProfilePictureURL string         `json:"profile_picture_url"`
	GovernmentIDURL   string         `json:"government_id_url"`
	ResumeURL         string         `json:"resume_url"`
	CertificationURLs datatypes.JSON `gorm:"type:jsonb" json:"certification_urls"`

	// Relations
	EducationRecords []EducationRecord `gorm:"foreignKey:UserID;references:UserID" json:"education_records,omitempty"`
}

// GetAvailability decodes the availability map.
func (p *CaregiverProfile) GetAvailability() map[string][]string {
	out := make(map[string][]string)
	if len(p.Availability) > 0 {
		_ = json.Unmarshal(p.Availability, &out)
	}
	return out
}

// GetCertificationURLs decodes the certification URL list.
func (p *CaregiverProfile) GetCertificationURLs() []string {
	var out []string
	if len(p.CertificationURLs) > 0 {
		_ = json.Unmarshal(p.CertificationURLs, &out)
	}
	return out
}
