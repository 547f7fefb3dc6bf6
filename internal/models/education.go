package models

// EducationRecord is one entry of a caregiver's education history and the
// parent of its document attachments.
type EducationRecord struct {
	BaseModel
	UserID       string `gorm:"not null;index" json:"user_id"`
	Institution  string `gorm:"not null" json:"institution"`
	Qualification string `json:"qualification"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`

	// Relations
	Documents []Document `gorm:"foreignKey:OwnerID;references:ID" json:"documents,omitempty"`
}
