// Package wizard implements the multi-step form engine behind the caregiver
// and institution registration forms. The wizard owns only its cursor and
// banner; the form values belong to the caller and are passed into every
// operation.
package wizard

import (
	"errors"
	"fmt"

	appvalidator "careassoc_backend/internal/validator"
)

var (
	ErrNotAtTerminal = errors.New("submit is only allowed from the last step")
	ErrUnknownStep   = errors.New("step index out of range")
)

// Step declares one wizard step and the form fields it owns, named by their
// json keys.
type Step struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// BannerKind distinguishes the page-level message shown above the form.
type BannerKind string

const (
	BannerNone    BannerKind = ""
	BannerError   BannerKind = "error"
	BannerSuccess BannerKind = "success"
)

// Banner is the page-level message carried between operations.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

// Wizard walks an ordered list of steps, validating each step's field subset
// before allowing forward movement.
type Wizard struct {
	steps    []Step
	validate *appvalidator.Validator

	cursor int
	banner Banner
}

// New creates a wizard positioned at the first step.
func New(steps []Step, v *appvalidator.Validator) *Wizard {
	return &Wizard{steps: steps, validate: v}
}

// Steps returns the step definitions, for clients that render progress.
func (w *Wizard) Steps() []Step { return w.steps }

// Cursor returns the current step index.
func (w *Wizard) Cursor() int { return w.cursor }

// Banner returns the current page-level message.
func (w *Wizard) Banner() Banner { return w.banner }

// AtTerminal reports whether the cursor is on the last step.
func (w *Wizard) AtTerminal() bool { return w.cursor == len(w.steps)-1 }

// ValidateStep runs whole-form validation but only reports errors on fields
// the given step owns. Errors on fields belonging to other steps are
// tolerated so a user is never blocked by a step they have not reached.
func (w *Wizard) ValidateStep(index int, form interface{}) (bool, map[string]string, error) {
	if index < 0 || index >= len(w.steps) {
		return false, nil, ErrUnknownStep
	}

	err := w.validate.Validate(form)
	if err == nil {
		return true, nil, nil
	}

	var verr *appvalidator.ValidationError
	if !errors.As(err, &verr) {
		return false, nil, err
	}

	owned := make(map[string]bool, len(w.steps[index].Fields))
	for _, f := range w.steps[index].Fields {
		owned[f] = true
	}

	stepErrors := make(map[string]string)
	for field, msg := range verr.Errors {
		if owned[field] {
			stepErrors[field] = msg
		}
	}
	if len(stepErrors) == 0 {
		return true, nil, nil
	}
	return false, stepErrors, nil
}

// Advance validates the current step and, on success, moves the cursor
// forward and clears the banner. On validation failure the cursor stays put
// and an error banner is set. Returns whether the cursor moved, plus the
// field errors that blocked it.
func (w *Wizard) Advance(form interface{}) (bool, map[string]string, error) {
	if w.AtTerminal() {
		return false, nil, nil
	}

	ok, fieldErrors, err := w.ValidateStep(w.cursor, form)
	if err != nil {
		return false, nil, err
	}
	if !ok {
		w.banner = Banner{
			Kind:    BannerError,
			Message: fmt.Sprintf("Please fix the highlighted fields in %q before continuing", w.steps[w.cursor].Name),
		}
		return false, fieldErrors, nil
	}

	w.cursor++
	w.banner = Banner{}
	return true, nil, nil
}

// Retreat moves the cursor backward without validating. It always clears the
// banner; it reports whether the cursor actually moved.
func (w *Wizard) Retreat() bool {
	w.banner = Banner{}
	if w.cursor == 0 {
		return false
	}
	w.cursor--
	return true
}

// Submit runs full-form validation and, when clean, calls persist. It is
// only reachable from the terminal step.
//
// persist may itself return a *validator.ValidationError (for example when a
// JSON-text sub-field fails to parse during payload transforms); those are
// reported as field errors like any other validation failure. Any other
// persist error is surfaced verbatim in the error banner and returned. On
// success the success banner is set and the cursor stays where it is; the
// next screen is the router's call, not the wizard's.
func (w *Wizard) Submit(form interface{}, persist func() error) (map[string]string, error) {
	if !w.AtTerminal() {
		return nil, ErrNotAtTerminal
	}

	if err := w.validate.Validate(form); err != nil {
		var verr *appvalidator.ValidationError
		if errors.As(err, &verr) {
			w.banner = Banner{Kind: BannerError, Message: "Please fix the highlighted fields"}
			return verr.Errors, nil
		}
		return nil, err
	}

	if err := persist(); err != nil {
		var verr *appvalidator.ValidationError
		if errors.As(err, &verr) {
			w.banner = Banner{Kind: BannerError, Message: "Please fix the highlighted fields"}
			return verr.Errors, nil
		}
		w.banner = Banner{Kind: BannerError, Message: err.Error()}
		return nil, err
	}

	w.banner = Banner{Kind: BannerSuccess, Message: "Profile saved"}
	return nil, nil
}
