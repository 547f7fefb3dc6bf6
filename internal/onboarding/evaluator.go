package onboarding

import "careassoc_backend/internal/models"

// IsCoreComplete reports whether every common profile field is filled in.
// A nil profile (no row yet) is never complete.
func IsCoreComplete(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return p.FullName != "" &&
		p.Phone != "" &&
		p.Gender != "" &&
		p.DateOfBirth != "" &&
		p.Location != "" &&
		p.Role != ""
}

// RequiresRoleProfile reports whether the role has a dedicated role-profile
// form. Every other role is treated as having its role profile vacuously
// complete.
func RequiresRoleProfile(role models.UserRole) bool {
	return role == models.UserRoleCaregiver || role == models.UserRoleInstitution
}
