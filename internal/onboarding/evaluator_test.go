package onboarding

import (
	"fmt"
	"testing"

	"careassoc_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsCoreCompleteNilProfile(t *testing.T) {
	assert.False(t, IsCoreComplete(nil))
}

// Every required field must be non-empty for completeness, and emptying any
// single one flips the result. All 2^6 presence combinations.
func TestIsCoreCompleteAllFieldCombinations(t *testing.T) {
	setters := []func(*models.Profile, bool){
		func(p *models.Profile, on bool) {
			if on {
				p.FullName = "Jane Doe"
			}
		},
		func(p *models.Profile, on bool) {
			if on {
				p.Phone = "+4915112345678"
			}
		},
		func(p *models.Profile, on bool) {
			if on {
				p.Gender = models.GenderFemale
			}
		},
		func(p *models.Profile, on bool) {
			if on {
				p.DateOfBirth = "1990-04-12"
			}
		},
		func(p *models.Profile, on bool) {
			if on {
				p.Location = "Berlin"
			}
		},
		func(p *models.Profile, on bool) {
			if on {
				p.Role = models.UserRoleCaregiver
			}
		},
	}

	for mask := 0; mask < 1<<len(setters); mask++ {
		p := &models.Profile{UserID: "u1"}
		for i, set := range setters {
			set(p, mask&(1<<i) != 0)
		}

		wantComplete := mask == 1<<len(setters)-1
		assert.Equal(t, wantComplete, IsCoreComplete(p),
			fmt.Sprintf("mask %06b", mask))
	}
}

func TestStaffIDDoesNotAffectCoreCompleteness(t *testing.T) {
	p := &models.Profile{
		UserID:      "u1",
		FullName:    "Sam Admin",
		Phone:       "+4915112345678",
		Gender:      models.GenderOther,
		DateOfBirth: "1985-01-01",
		Location:    "Hamburg",
		Role:        models.UserRoleAdmin,
	}
	// The staff identifier is enforced by form validation, not by the
	// completeness evaluator.
	assert.True(t, IsCoreComplete(p))
}

func TestRequiresRoleProfile(t *testing.T) {
	assert.True(t, RequiresRoleProfile(models.UserRoleCaregiver))
	assert.True(t, RequiresRoleProfile(models.UserRoleInstitution))

	for _, role := range []models.UserRole{
		models.UserRoleGuest, models.UserRoleAdmin, models.UserRoleAssessor,
		models.UserRoleTrainer, models.UserRoleEmployer,
	} {
		assert.False(t, RequiresRoleProfile(role), string(role))
	}
}
