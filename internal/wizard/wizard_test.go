package wizard

import (
	"errors"
	"testing"

	appvalidator "careassoc_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationForm struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Website   string `json:"website" validate:"omitempty,url"`
}

func testSteps() []Step {
	return []Step{
		{Name: "Name", Fields: []string{"first_name", "last_name"}},
		{Name: "Contact", Fields: []string{"email", "website"}},
	}
}

func validForm() *applicationForm {
	return &applicationForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.org",
	}
}

func newTestWizard() *Wizard {
	return New(testSteps(), appvalidator.New())
}

func TestValidateStepOnlySurfacesOwnFields(t *testing.T) {
	w := newTestWizard()

	// First step fields are fine; the email error belongs to a later step
	// and must be tolerated.
	form := &applicationForm{FirstName: "Jane", LastName: "Doe"}

	ok, fieldErrors, err := w.ValidateStep(0, form)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fieldErrors)

	ok, fieldErrors, err = w.ValidateStep(1, form)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, fieldErrors, "email")
	assert.NotContains(t, fieldErrors, "first_name")
}

func TestValidateStepUnknownIndex(t *testing.T) {
	w := newTestWizard()
	_, _, err := w.ValidateStep(5, validForm())
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, _, err = w.ValidateStep(-1, validForm())
	assert.ErrorIs(t, err, ErrUnknownStep)
}

// A failing field in the current step blocks the cursor, no matter how valid
// later steps are.
func TestAdvanceBlockedByCurrentStep(t *testing.T) {
	w := newTestWizard()

	form := &applicationForm{LastName: "Doe", Email: "jane@example.org"}

	moved, fieldErrors, err := w.Advance(form)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 0, w.Cursor())
	assert.Contains(t, fieldErrors, "first_name")
	assert.Equal(t, BannerError, w.Banner().Kind)
}

func TestAdvanceMovesAndClearsBanner(t *testing.T) {
	w := newTestWizard()

	// Fail once to set the banner.
	moved, _, err := w.Advance(&applicationForm{})
	require.NoError(t, err)
	require.False(t, moved)
	require.Equal(t, BannerError, w.Banner().Kind)

	moved, fieldErrors, err := w.Advance(validForm())
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, 1, w.Cursor())
	assert.Equal(t, BannerNone, w.Banner().Kind)
	assert.True(t, w.AtTerminal())
}

func TestRetreatNeverValidates(t *testing.T) {
	w := newTestWizard()

	moved, _, err := w.Advance(validForm())
	require.NoError(t, err)
	require.True(t, moved)

	// Retreating with a now-invalid form still succeeds and clears banners.
	assert.True(t, w.Retreat())
	assert.Equal(t, 0, w.Cursor())
	assert.Equal(t, BannerNone, w.Banner().Kind)

	// At the first step there is nowhere further back.
	assert.False(t, w.Retreat())
	assert.Equal(t, 0, w.Cursor())
}

func TestSubmitOnlyFromTerminalStep(t *testing.T) {
	w := newTestWizard()

	_, err := w.Submit(validForm(), func() error { return nil })
	assert.ErrorIs(t, err, ErrNotAtTerminal)
}

func TestSubmitSuccessSetsSuccessBannerAndStaysPut(t *testing.T) {
	w := newTestWizard()
	moved, _, err := w.Advance(validForm())
	require.NoError(t, err)
	require.True(t, moved)

	persisted := false
	fieldErrors, err := w.Submit(validForm(), func() error {
		persisted = true
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	assert.True(t, persisted)
	assert.Equal(t, BannerSuccess, w.Banner().Kind)
	// No auto-navigation: the router decides the next screen.
	assert.Equal(t, 1, w.Cursor())
}

func TestSubmitValidationFailureSkipsPersist(t *testing.T) {
	w := newTestWizard()
	moved, _, err := w.Advance(validForm())
	require.NoError(t, err)
	require.True(t, moved)

	persisted := false
	fieldErrors, err := w.Submit(&applicationForm{FirstName: "Jane", LastName: "Doe"}, func() error {
		persisted = true
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "email")
	assert.False(t, persisted)
	assert.Equal(t, BannerError, w.Banner().Kind)
}

func TestSubmitPersistValidationErrorIsFieldScoped(t *testing.T) {
	w := newTestWizard()
	moved, _, err := w.Advance(validForm())
	require.NoError(t, err)
	require.True(t, moved)

	fieldErrors, err := w.Submit(validForm(), func() error {
		return &appvalidator.ValidationError{
			Errors: map[string]string{"website": "Must be a JSON object"},
		}
	})
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "website")
	assert.Equal(t, BannerError, w.Banner().Kind)
}

func TestSubmitGatewayErrorSurfacedVerbatim(t *testing.T) {
	w := newTestWizard()
	moved, _, err := w.Advance(validForm())
	require.NoError(t, err)
	require.True(t, moved)

	gatewayErr := errors.New("connection refused")
	fieldErrors, err := w.Submit(validForm(), func() error { return gatewayErr })
	assert.ErrorIs(t, err, gatewayErr)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, BannerError, w.Banner().Kind)
	assert.Equal(t, "connection refused", w.Banner().Message)
}
