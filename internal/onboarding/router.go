package onboarding

import "careassoc_backend/internal/models"

// State is where an account stands in the onboarding flow.
type State string

const (
	StateNoIdentity         State = "no_identity"
	StateCoreIncomplete     State = "core_incomplete"
	StateRoleProfilePending State = "role_profile_pending"
	StateFullyOnboarded     State = "fully_onboarded"
)

// Redirect targets. The frontend mounts its pages at these paths.
const (
	SignInPath          = "/auth/signin"
	SignInErrorPath     = "/auth/signin?error=1"
	CaregiverFormPath   = "/account/caregiver"
	InstitutionFormPath = "/account/institution"
	GenericDashboard    = "/dashboard"
)

// Input is the set of facts the router decides on. The caller resolves them
// from the session and the database; the router itself never does I/O.
type Input struct {
	Authenticated  bool
	Profile        *models.Profile // nil when the row does not exist
	HasRoleProfile bool
}

// Decision is the router's verdict for one request. Redirect is empty only
// in the CoreIncomplete state, where the common profile form is rendered
// in place.
type Decision struct {
	State    State  `json:"state"`
	Redirect string `json:"redirect,omitempty"`
}

// Resolve evaluates the routing rules top to bottom, first match wins:
//
//  1. no identity → sign-in
//  2. core profile missing or incomplete → render the common form
//  3. not yet onboarded, role has a form, no role profile row → role form
//  4. everything else → dashboard by role
//
// Rule 3 only runs while Onboarded is false. Once the flag is set the role
// form is never offered again, even if the role profile row disappears
// out-of-band. That gate is one-way on purpose.
func Resolve(in Input) Decision {
	if !in.Authenticated {
		return Decision{State: StateNoIdentity, Redirect: SignInPath}
	}
	if !IsCoreComplete(in.Profile) {
		return Decision{State: StateCoreIncomplete}
	}
	if !in.Profile.Onboarded && RequiresRoleProfile(in.Profile.Role) && !in.HasRoleProfile {
		return Decision{State: StateRoleProfilePending, Redirect: RoleFormPath(in.Profile.Role)}
	}
	return Decision{State: StateFullyOnboarded, Redirect: DashboardFor(in.Profile.Role)}
}

// FailClosed is the decision for any lookup error while routing: back to
// sign-in with an error indicator, never a retry.
func FailClosed() Decision {
	return Decision{State: StateNoIdentity, Redirect: SignInErrorPath}
}

// RoleFormPath maps a form-bearing role to its registration form.
func RoleFormPath(role models.UserRole) string {
	if role == models.UserRoleInstitution {
		return InstitutionFormPath
	}
	return CaregiverFormPath
}

// DashboardFor maps a role to its dashboard. Unknown roles land on the
// generic dashboard rather than erroring.
func DashboardFor(role models.UserRole) string {
	switch role {
	case models.UserRoleCaregiver:
		return "/dashboard/caregiver"
	case models.UserRoleInstitution:
		return "/dashboard/packages"
	case models.UserRoleAdmin:
		return "/dashboard/admin"
	case models.UserRoleAssessor:
		return "/dashboard/assessor"
	case models.UserRoleTrainer:
		return "/dashboard/trainer"
	case models.UserRoleEmployer:
		return "/dashboard/employer"
	default:
		return GenericDashboard
	}
}
