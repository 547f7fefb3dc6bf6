package models

// Document owner types.
const (
	DocumentOwnerEducationRecord = "education_record"
	DocumentOwnerInstitution     = "institution"
)

// Document is a stored file attached to exactly one parent record. The row
// and the backing storage object are created together by the attach
// transaction; deletion is row-authoritative.
type Document struct {
	BaseModel
	UserID       string `gorm:"not null;index" json:"user_id"`
	OwnerType    string `gorm:"not null;index:idx_documents_owner" json:"owner_type"`
	OwnerID      string `gorm:"not null;index:idx_documents_owner" json:"owner_id"`
	Path         string `gorm:"not null" json:"path"`
	URL          string `json:"url"`
	DisplayName  string `json:"display_name"`
	DocumentType string `json:"document_type"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issue_date"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}
