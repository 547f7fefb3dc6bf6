package services

import (
	"testing"

	"careassoc_backend/internal/models"
	"careassoc_backend/internal/services/dto"
	appvalidator "careassoc_backend/internal/validator"
	"careassoc_backend/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInstitutionForm() *dto.InstitutionFormRequest {
	return &dto.InstitutionFormRequest{
		InstitutionName:  "Sunrise Care Home",
		InstitutionType:  "nursing_home",
		YearsInOperation: 12,
		ContactEmail:     "office@sunrise.example.org",
		ContactPhone:     "+4930123456",
		Country:          "Germany",
		City:             "Berlin",
		Details:          `{"beds": 80}`,
		Location:         `{"lat": 52.52, "lng": 13.405}`,
	}
}

type institutionFixture struct {
	svc      InstitutionService
	profRepo *fakeProfileRepo
}

func newInstitutionFixture() *institutionFixture {
	profRepo := newFakeProfileRepo()
	profRepo.profiles["u2"] = &models.Profile{
		BaseModel:   models.BaseModel{ID: "profile-u2"},
		UserID:      "u2",
		FullName:    "Sunrise Care Home",
		Phone:       "+4930123456",
		Gender:      models.GenderOther,
		DateOfBirth: "2000-01-01",
		Location:    "Berlin",
		Role:        models.UserRoleInstitution,
	}
	return &institutionFixture{
		svc:      NewInstitutionService(profRepo, appvalidator.New()),
		profRepo: profRepo,
	}
}

func TestInstitutionSubmitPersistsAndClosesGate(t *testing.T) {
	f := newInstitutionFixture()

	fieldErrors, banner, err := f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	assert.Equal(t, wizard.BannerSuccess, banner.Kind)

	require.Len(t, f.profRepo.institutions, 1)
	saved := f.profRepo.institutions["u2"]
	assert.Equal(t, "Sunrise Care Home", saved.InstitutionName)
	assert.Equal(t, models.InstitutionStatusPending, saved.Status)
	assert.JSONEq(t, `{"beds": 80}`, string(saved.Details))

	assert.True(t, f.profRepo.profiles["u2"].Onboarded)
}

func TestInstitutionSubmitIsIdempotentUpsert(t *testing.T) {
	f := newInstitutionFixture()

	_, _, err := f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)
	_, _, err = f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)

	assert.Len(t, f.profRepo.institutions, 1)
}

// Resubmitting must not knock an approved application back to pending.
func TestInstitutionResubmitKeepsReviewedStatus(t *testing.T) {
	f := newInstitutionFixture()

	_, _, err := f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)

	f.profRepo.institutions["u2"].Status = models.InstitutionStatusApproved

	_, _, err = f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)

	assert.Equal(t, models.InstitutionStatusApproved, f.profRepo.institutions["u2"].Status)
}

func TestInstitutionSubmitDetailsShapeError(t *testing.T) {
	f := newInstitutionFixture()

	form := validInstitutionForm()
	form.Details = `[1, 2, 3]`

	fieldErrors, banner, err := f.svc.Submit(nil, "u2", form)
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "details")
	assert.Equal(t, wizard.BannerError, banner.Kind)
	assert.Empty(t, f.profRepo.institutions)
}

func TestInstitutionSubmitBlockedByEarlyStep(t *testing.T) {
	f := newInstitutionFixture()

	form := validInstitutionForm()
	form.InstitutionName = ""

	fieldErrors, _, err := f.svc.Submit(nil, "u2", form)
	require.NoError(t, err)
	assert.Contains(t, fieldErrors, "institution_name")
	assert.Empty(t, f.profRepo.institutions)
}

func TestInstitutionValidateStepIgnoresLaterSteps(t *testing.T) {
	f := newInstitutionFixture()

	form := &dto.InstitutionFormRequest{
		InstitutionName: "Sunrise Care Home",
		InstitutionType: "nursing_home",
	}

	resp, err := f.svc.ValidateStep(0, form)
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	resp, err = f.svc.ValidateStep(1, form)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.FieldErrors, "contact_email")
}

func TestInstitutionGetFormSeedsFromPersistedProfile(t *testing.T) {
	f := newInstitutionFixture()

	seed, err := f.svc.GetForm(nil, "u2")
	require.NoError(t, err)
	assert.False(t, seed.Exists)

	_, _, err = f.svc.Submit(nil, "u2", validInstitutionForm())
	require.NoError(t, err)

	seed, err = f.svc.GetForm(nil, "u2")
	require.NoError(t, err)
	assert.True(t, seed.Exists)
	assert.Equal(t, "Sunrise Care Home", seed.Form.InstitutionName)
	assert.JSONEq(t, `{"lat": 52.52, "lng": 13.405}`, seed.Form.Location)
}
