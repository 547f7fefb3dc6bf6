package dto

// CaregiverFormRequest is the full caregiver registration form. The wizard
// splits it into steps by json field name; JSON-text fields (availability,
// certification_urls) are parsed into structures at submit time.
type CaregiverFormRequest struct {
	// Step: professional background
	Profession         string `json:"profession" validate:"required,max=100"`
	Specialty          string `json:"specialty" validate:"required,max=100"`
	CertificationLevel string `json:"certification_level" validate:"required,max=100"`
	LicenceNumber      string `json:"licence_number" validate:"required,max=100"`

	// Step: address and emergency contact
	Country               string `json:"country" validate:"required,max=100"`
	State                 string `json:"state" validate:"omitempty,max=100"`
	City                  string `json:"city" validate:"required,max=100"`
	Street                string `json:"street" validate:"omitempty,max=200"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"required,max=200"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required,max=30"`

	// Step: availability and documents
	Availability      string `json:"availability" validate:"required,json-text"`
	ProfilePictureURL string `json:"profile_picture_url" validate:"omitempty,url"`
	GovernmentIDURL   string `json:"government_id_url" validate:"omitempty,url"`
	ResumeURL         string `json:"resume_url" validate:"omitempty,url"`
	CertificationURLs string `json:"certification_urls" validate:"omitempty,json-text"`
}

// CaregiverFormSeed is the GET response for the caregiver form: the form
// values re-seeded from the last persisted profile, if any.
type CaregiverFormSeed struct {
	Exists bool                  `json:"exists"`
	Form   *CaregiverFormRequest `json:"form"`
}
