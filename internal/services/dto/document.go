package dto

// DocumentMetadata is the descriptive part of an attachment, supplied
// alongside the file bytes.
type DocumentMetadata struct {
	DisplayName  string `json:"display_name" validate:"omitempty,max=200"`
	DocumentType string `json:"document_type" validate:"omitempty,max=100"`
	Issuer       string `json:"issuer" validate:"omitempty,max=200"`
	IssueDate    string `json:"issue_date" validate:"omitempty,max=20"`
}

// StepValidationResponse is the body of the per-step validate endpoint.
type StepValidationResponse struct {
	Valid       bool              `json:"valid"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}
