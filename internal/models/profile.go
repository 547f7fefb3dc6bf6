package models

// Profile is the core profile every account carries, one row per user.
// Onboarded=true implies every common field (full name, phone, gender,
// date of birth, location, role) is non-empty.
type Profile struct {
	BaseModel
	UserID      string   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName    string   `json:"full_name"`
	Phone       string   `json:"phone"`
	Gender      Gender   `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth string   `json:"date_of_birth"`
	Location    string   `json:"location"`
	Role        UserRole `gorm:"type:varchar(20)" json:"role"`
	// StaffID is the staff identifier, required only for admin, assessor
	// and trainer roles.
	StaffID    string `gorm:"column:staff_id" json:"staff_id"`
	AvatarPath string `json:"avatar_path"`
	Onboarded  bool   `gorm:"default:false" json:"onboarded"`
}
