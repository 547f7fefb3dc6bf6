package dto

import (
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/onboarding"
)

// CoreProfileRequest carries the common profile form. StaffID is only
// enforced when Role is a staff role; the validator inspects the sibling
// Role field for that.
type CoreProfileRequest struct {
	FullName    string          `json:"full_name" validate:"required,max=200"`
	Phone       string          `json:"phone" validate:"required,max=30"`
	Gender      models.Gender   `json:"gender" validate:"required,is-gender"`
	DateOfBirth string          `json:"date_of_birth" validate:"required"`
	Location    string          `json:"location" validate:"required,max=200"`
	Role        models.UserRole `json:"role" validate:"required,is-user-role"`
	StaffID     string          `json:"staff_id" validate:"required_for_staff_role"`
	AvatarPath  string          `json:"avatar_path" validate:"omitempty,max=500"`
}

// AccountGateResponse is the body of GET /account in the CoreIncomplete
// state: the routing verdict plus the form seed (nil when no row exists yet).
type AccountGateResponse struct {
	Decision onboarding.Decision `json:"decision"`
	Profile  *models.Profile     `json:"profile,omitempty"`
}
