package handlers

import (
	"net/http"
	"strconv"

	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/internal/wizard"
	"careassoc_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CaregiverHandler struct {
	*BaseHandler
	caregiverService services.CaregiverService
	documentService  services.DocumentService
}

func NewCaregiverHandler(
	base *BaseHandler,
	caregiverService services.CaregiverService,
	documentService services.DocumentService,
) *CaregiverHandler {
	return &CaregiverHandler{
		BaseHandler:      base,
		caregiverService: caregiverService,
		documentService:  documentService,
	}
}

func (h *CaregiverHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/account/caregiver",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(models.UserRoleCaregiver),
	)
	{
		group.GET("", h.GetForm)
		group.POST("", h.Submit)
		group.POST("/steps/:index/validate", h.ValidateStep)

		group.GET("/education", h.ListEducation)
		group.POST("/education", h.AddEducation)
		group.DELETE("/education/:id", h.DeleteEducation)
		group.POST("/education/:id/documents", h.AttachEducationDocuments)
	}
}

// GetForm returns the step definitions plus values re-seeded from the last
// persisted profile. The wizard cursor itself is client-local and always
// restarts at the first step.
func (h *CaregiverHandler) GetForm(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	seed, err := h.caregiverService.GetForm(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"steps": services.CaregiverSteps(),
		"seed":  seed,
	})
}

func (h *CaregiverHandler) ValidateStep(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Step index must be an integer"))
		return
	}

	var form dto.CaregiverFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	resp, verr := h.caregiverService.ValidateStep(index, &form)
	if verr != nil {
		h.HandleServiceError(c, verr)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CaregiverHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var form dto.CaregiverFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	fieldErrors, banner, err := h.caregiverService.Submit(h.GetDB(c), userID, &form)
	if err != nil {
		respondSubmitError(c, banner, err)
		return
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"banner": banner, "field_errors": fieldErrors})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

func (h *CaregiverHandler) ListEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	records, err := h.caregiverService.ListEducationRecords(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *CaregiverHandler) AddEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EducationRecordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	record, err := h.caregiverService.AddEducationRecord(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *CaregiverHandler) DeleteEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.caregiverService.DeleteEducationRecord(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachEducationDocuments attaches the uploaded files to an education
// record, strictly in form order.
func (h *CaregiverHandler) AttachEducationDocuments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	files, cleanup, err := formFiles(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	defer cleanup()

	attached, err := h.documentService.AttachDocuments(
		c.Request.Context(), h.GetDB(c),
		userID, models.DocumentOwnerEducationRecord, c.Param("id"),
		files,
	)
	if err != nil {
		// Earlier successes stay persisted; report both.
		c.JSON(statusForAttachError(err), gin.H{
			"attached": attached,
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attached": attached})
}

// respondSubmitError surfaces a gateway failure as a banner, leaving the
// client's form populated for a retry.
func respondSubmitError(c *gin.Context, banner wizard.Banner, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPCode, gin.H{"banner": banner, "error": appErr})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"banner": banner, "error": err.Error()})
}

func statusForAttachError(err error) int {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.HTTPCode
	}
	return http.StatusBadGateway
}
