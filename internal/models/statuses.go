package models

type UserRole string
type UserStatus string
type Gender string
type InstitutionStatus string

const (
	UserRoleGuest       UserRole = "guest"
	UserRoleCaregiver   UserRole = "caregiver"
	UserRoleInstitution UserRole = "institution"
	UserRoleAdmin       UserRole = "admin"
	UserRoleAssessor    UserRole = "assessor"
	UserRoleTrainer     UserRole = "trainer"
	UserRoleEmployer    UserRole = "employer"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"

	InstitutionStatusPending  InstitutionStatus = "pending"
	InstitutionStatusApproved InstitutionStatus = "approved"
	InstitutionStatusRejected InstitutionStatus = "rejected"
)

// StaffRoles are the roles that require a staff identifier on the core
// profile.
var StaffRoles = []UserRole{UserRoleAdmin, UserRoleAssessor, UserRoleTrainer}

// IsStaffRole reports whether the role requires a staff identifier.
func IsStaffRole(role UserRole) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AllRoles lists every assignable role, used by validation and tests.
var AllRoles = []UserRole{
	UserRoleGuest,
	UserRoleCaregiver,
	UserRoleInstitution,
	UserRoleAdmin,
	UserRoleAssessor,
	UserRoleTrainer,
	UserRoleEmployer,
}
