package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"careassoc_backend/internal/auth"
	"careassoc_backend/internal/config"
	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/onboarding"
	"careassoc_backend/internal/services/dto"
	appvalidator "careassoc_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// fakeOnboardingService returns a canned routing decision.
type fakeOnboardingService struct {
	decision onboarding.Decision
	profile  *models.Profile
}

func (s *fakeOnboardingService) ResolveAccount(_ *gorm.DB, _ string, authenticated bool) (onboarding.Decision, *models.Profile) {
	if !authenticated {
		return onboarding.Resolve(onboarding.Input{}), nil
	}
	return s.decision, s.profile
}

// fakeProfileService records the upsert it receives.
type fakeProfileService struct {
	lastUserID string
	lastReq    *dto.CoreProfileRequest
}

func (s *fakeProfileService) GetProfile(_ *gorm.DB, userID string) (*models.Profile, error) {
	return &models.Profile{UserID: userID}, nil
}

func (s *fakeProfileService) UpsertCoreProfile(_ *gorm.DB, userID string, req *dto.CoreProfileRequest) (*models.Profile, error) {
	s.lastUserID = userID
	s.lastReq = req
	return &models.Profile{UserID: userID, FullName: req.FullName, Role: req.Role}, nil
}

func gateRouter(onboardingSvc *fakeOnboardingService, profileSvc *fakeProfileService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	base := NewBaseHandler(appvalidator.New())
	h := NewAccountHandler(base, onboardingSvc, profileSvc)

	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router
}

func bearer(t *testing.T, userID string, role models.UserRole) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

// No core profile yet: the gate renders the common form in place, zero
// redirects.
func TestGateRendersCommonFormWhenCoreIncomplete(t *testing.T) {
	svc := &fakeOnboardingService{
		decision: onboarding.Decision{State: onboarding.StateCoreIncomplete},
	}
	router := gateRouter(svc, &fakeProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.Header.Set("Authorization", bearer(t, "u1", models.UserRoleCaregiver))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), string(onboarding.StateCoreIncomplete))
}

func TestGateRedirectsPendingCaregiverToRoleForm(t *testing.T) {
	svc := &fakeOnboardingService{
		decision: onboarding.Decision{
			State:    onboarding.StateRoleProfilePending,
			Redirect: onboarding.CaregiverFormPath,
		},
	}
	router := gateRouter(svc, &fakeProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.Header.Set("Authorization", bearer(t, "u1", models.UserRoleCaregiver))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/account/caregiver", rec.Header().Get("Location"))
}

func TestGateRedirectsUnauthenticatedToSignIn(t *testing.T) {
	router := gateRouter(&fakeOnboardingService{}, &fakeProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))
}

func TestGateRedirectsOnboardedInstitutionToPackages(t *testing.T) {
	svc := &fakeOnboardingService{
		decision: onboarding.Decision{
			State:    onboarding.StateFullyOnboarded,
			Redirect: "/dashboard/packages",
		},
	}
	router := gateRouter(svc, &fakeProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	req.Header.Set("Authorization", bearer(t, "u2", models.UserRoleInstitution))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/dashboard/packages", rec.Header().Get("Location"))
}

func TestUpdateCoreProfileRequiresAuth(t *testing.T) {
	router := gateRouter(&fakeOnboardingService{}, &fakeProfileService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/account",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateCoreProfileValidatesAndPersists(t *testing.T) {
	profileSvc := &fakeProfileService{}
	router := gateRouter(&fakeOnboardingService{}, profileSvc)

	body := `{
		"full_name": "Jane Doe",
		"phone": "+4915112345678",
		"gender": "Female",
		"date_of_birth": "1990-04-12",
		"location": "Berlin",
		"role": "caregiver"
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/account", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "u1", models.UserRoleCaregiver))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", profileSvc.lastUserID)
	assert.Equal(t, "Jane Doe", profileSvc.lastReq.FullName)
}

func TestUpdateCoreProfileRejectsMissingStaffID(t *testing.T) {
	router := gateRouter(&fakeOnboardingService{}, &fakeProfileService{})

	body := `{
		"full_name": "Sam Admin",
		"phone": "+4915112345678",
		"gender": "Other",
		"date_of_birth": "1985-01-01",
		"location": "Hamburg",
		"role": "admin"
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/account", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "u3", models.UserRoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "staff_id")
}
