package onboarding

import (
	"fmt"
	"testing"

	"careassoc_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func completeProfile(role models.UserRole, onboarded bool) *models.Profile {
	return &models.Profile{
		UserID:      "u1",
		FullName:    "Jane Doe",
		Phone:       "+4915112345678",
		Gender:      models.GenderFemale,
		DateOfBirth: "1990-04-12",
		Location:    "Berlin",
		Role:        role,
		Onboarded:   onboarded,
	}
}

var dashboards = map[models.UserRole]string{
	models.UserRoleCaregiver:   "/dashboard/caregiver",
	models.UserRoleInstitution: "/dashboard/packages",
	models.UserRoleAdmin:       "/dashboard/admin",
	models.UserRoleAssessor:    "/dashboard/assessor",
	models.UserRoleTrainer:     "/dashboard/trainer",
	models.UserRoleEmployer:    "/dashboard/employer",
	models.UserRoleGuest:       "/dashboard",
}

// The full decision table: authenticated x core-complete x onboarded x role
// x role-profile-exists. The same tuple must always yield the same verdict.
func TestResolveExhaustive(t *testing.T) {
	bools := []bool{false, true}

	for _, authenticated := range bools {
		for _, coreComplete := range bools {
			for _, onboarded := range bools {
				for _, role := range models.AllRoles {
					for _, hasRoleProfile := range bools {
						name := fmt.Sprintf("auth=%v core=%v onboarded=%v role=%s roleProfile=%v",
							authenticated, coreComplete, onboarded, role, hasRoleProfile)

						var profile *models.Profile
						if coreComplete {
							profile = completeProfile(role, onboarded)
						} else {
							profile = &models.Profile{UserID: "u1", Role: role, Onboarded: onboarded}
						}

						got := Resolve(Input{
							Authenticated:  authenticated,
							Profile:        profile,
							HasRoleProfile: hasRoleProfile,
						})

						var want Decision
						switch {
						case !authenticated:
							want = Decision{State: StateNoIdentity, Redirect: SignInPath}
						case !coreComplete:
							want = Decision{State: StateCoreIncomplete}
						case !onboarded && RequiresRoleProfile(role) && !hasRoleProfile:
							want = Decision{State: StateRoleProfilePending, Redirect: RoleFormPath(role)}
						default:
							want = Decision{State: StateFullyOnboarded, Redirect: dashboards[role]}
						}

						assert.Equal(t, want, got, name)
					}
				}
			}
		}
	}
}

func TestResolveMissingProfileRendersCommonForm(t *testing.T) {
	// Authenticated identity with no core profile row at all.
	got := Resolve(Input{Authenticated: true, Profile: nil})
	assert.Equal(t, Decision{State: StateCoreIncomplete}, got)
}

func TestResolveCaregiverPendingRedirectsToRoleForm(t *testing.T) {
	got := Resolve(Input{
		Authenticated:  true,
		Profile:        completeProfile(models.UserRoleCaregiver, false),
		HasRoleProfile: false,
	})
	assert.Equal(t, StateRoleProfilePending, got.State)
	assert.Equal(t, "/account/caregiver", got.Redirect)
}

func TestResolveInstitutionDashboardIsPackages(t *testing.T) {
	got := Resolve(Input{
		Authenticated: true,
		Profile:       completeProfile(models.UserRoleInstitution, true),
	})
	assert.Equal(t, StateFullyOnboarded, got.State)
	assert.Equal(t, "/dashboard/packages", got.Redirect)
}

// Once onboarded, the role form is never offered again, even when the role
// profile row has been deleted out-of-band.
func TestOnboardedGateIsOneWay(t *testing.T) {
	got := Resolve(Input{
		Authenticated:  true,
		Profile:        completeProfile(models.UserRoleCaregiver, true),
		HasRoleProfile: false,
	})
	assert.Equal(t, StateFullyOnboarded, got.State)
	assert.Equal(t, "/dashboard/caregiver", got.Redirect)
}

func TestFailClosed(t *testing.T) {
	got := FailClosed()
	assert.Equal(t, StateNoIdentity, got.State)
	assert.Equal(t, "/auth/signin?error=1", got.Redirect)
}

func TestUnknownRoleFallsBackToGenericDashboard(t *testing.T) {
	assert.Equal(t, "/dashboard", DashboardFor(models.UserRole("volunteer")))
}
