package validator

import (
	"encoding/json"
	"log"
	"reflect"

	"careassoc_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the association-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-gender", validateGender)
	mustRegister("json-text", validateJSONText)
	mustRegister("required_for_staff_role", validateRequiredForStaffRole)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty
	}
	for _, r := range models.AllRoles {
		if models.UserRole(value) == r {
			return true
		}
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return true
	default:
		return false
	}
}

// validateJSONText accepts empty strings or syntactically valid JSON.
// Used for form fields that carry embedded JSON text (availability,
// details, location) before the submit transform parses them.
func validateJSONText(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return json.Valid([]byte(value))
}

// validateRequiredForStaffRole enforces the staff identifier on profiles
// whose sibling Role field names a staff role. A role-keyed refinement on
// top of the base record, not a subtype.
func validateRequiredForStaffRole(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	roleField := parent.FieldByName("Role")
	if !roleField.IsValid() || roleField.Kind() != reflect.String {
		return true
	}
	if models.IsStaffRole(models.UserRole(roleField.String())) {
		return fl.Field().String() != ""
	}
	return true
}
