package handlers

import (
	"net/http"
	"strconv"

	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type InstitutionHandler struct {
	*BaseHandler
	institutionService services.InstitutionService
	documentService    services.DocumentService
}

func NewInstitutionHandler(
	base *BaseHandler,
	institutionService services.InstitutionService,
	documentService services.DocumentService,
) *InstitutionHandler {
	return &InstitutionHandler{
		BaseHandler:        base,
		institutionService: institutionService,
		documentService:    documentService,
	}
}

func (h *InstitutionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/account/institution",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(models.UserRoleInstitution),
	)
	{
		group.GET("", h.GetForm)
		group.POST("", h.Submit)
		group.POST("/steps/:index/validate", h.ValidateStep)
		group.POST("/qualifications", h.AttachQualifications)
		group.GET("/qualifications", h.ListQualifications)
	}
}

func (h *InstitutionHandler) GetForm(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	seed, err := h.institutionService.GetForm(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"steps": services.InstitutionSteps(),
		"seed":  seed,
	})
}

func (h *InstitutionHandler) ValidateStep(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Step index must be an integer"))
		return
	}

	var form dto.InstitutionFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	resp, verr := h.institutionService.ValidateStep(index, &form)
	if verr != nil {
		h.HandleServiceError(c, verr)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InstitutionHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var form dto.InstitutionFormRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}

	fieldErrors, banner, err := h.institutionService.Submit(h.GetDB(c), userID, &form)
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

// AttachQualifications attaches uploaded qualification documents to the
// caller's institution profile.
func (h *InstitutionHandler) AttachQualifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.institutionService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	files, cleanup, err := formFiles(c)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError(err.Error()))
		return
	}
	defer cleanup()

	attached, err := h.documentService.AttachDocuments(
		c.Request.Context(), db,
		userID, models.DocumentOwnerInstitution, profile.ID,
		files,
	)
	if err != nil {
		c.JSON(statusForAttachError(err), gin.H{
			"attached": attached,
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attached": attached})
}

func (h *InstitutionHandler) ListQualifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.institutionService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	docs, err := h.documentService.ListDocuments(db, models.DocumentOwnerInstitution, profile.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}
