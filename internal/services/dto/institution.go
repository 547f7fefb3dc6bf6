package dto

// InstitutionFormRequest is the full institution registration form. Details
// and Location are free-form JSON text parsed at submit time.
type InstitutionFormRequest struct {
	// Step: organization
	InstitutionName  string `json:"institution_name" validate:"required,max=200"`
	InstitutionType  string `json:"institution_type" validate:"required,max=100"`
	YearsInOperation int    `json:"years_in_operation" validate:"omitempty,min=0,max=500"`
	Bio              string `json:"bio" validate:"omitempty,max=2000"`

	// Step: contact and address
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"required,max=30"`
	Website      string `json:"website" validate:"omitempty,url"`
	Country      string `json:"country" validate:"required,max=100"`
	State        string `json:"state" validate:"omitempty,max=100"`
	City         string `json:"city" validate:"required,max=100"`
	Street       string `json:"street" validate:"omitempty,max=200"`

	// Step: documents and details
	LogoURL             string `json:"logo_url" validate:"omitempty,url"`
	RegistrationDocURL  string `json:"registration_doc_url" validate:"omitempty,url"`
	LicenseDocURL       string `json:"license_doc_url" validate:"omitempty,url"`
	AccreditationDocURL string `json:"accreditation_doc_url" validate:"omitempty,url"`
	Details             string `json:"details" validate:"omitempty,json-text"`
	Location            string `json:"location" validate:"omitempty,json-text"`
}

// InstitutionFormSeed is the GET response for the institution form.
type InstitutionFormSeed struct {
	Exists bool                    `json:"exists"`
	Form   *InstitutionFormRequest `json:"form"`
}
