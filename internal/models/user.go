package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`

	// Relations
	Profile            *Profile            `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CaregiverProfile   *CaregiverProfile   `gorm:"foreignKey:UserID" json:"caregiver_profile,omitempty"`
	InstitutionProfile *InstitutionProfile `gorm:"foreignKey:UserID" json:"institution_profile,omitempty"`
	RefreshTokens      []RefreshToken      `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
