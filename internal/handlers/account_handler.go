package handlers

import (
	"net/http"

	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/onboarding"
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AccountHandler is the onboarding gate: GET decides where the user stands,
// PUT saves the common profile form.
type AccountHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
	profileService    services.ProfileService
}

func NewAccountHandler(
	base *BaseHandler,
	onboardingService services.OnboardingService,
	profileService services.ProfileService,
) *AccountHandler {
	return &AccountHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
		profileService:    profileService,
	}
}

func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/account", middleware.SoftAuthMiddleware(), h.Gate)
	rg.PUT("/account", middleware.AuthMiddleware(), h.UpdateCoreProfile)
}

// Gate re-evaluates the routing decision on every request. The common
// profile form is the only state answered in place; every other state is a
// redirect the frontend follows.
func (h *AccountHandler) Gate(c *gin.Context) {
	userID, authenticated := middleware.GetUserID(c)

	decision, profile := h.onboardingService.ResolveAccount(h.GetDB(c), userID, authenticated)

	if decision.State == onboarding.StateCoreIncomplete {
		c.JSON(http.StatusOK, dto.AccountGateResponse{Decision: decision, Profile: profile})
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, decision.Redirect)
}

func (h *AccountHandler) UpdateCoreProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CoreProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertCoreProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
