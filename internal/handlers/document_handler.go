package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	*BaseHandler
	documentService services.DocumentService
}

func NewDocumentHandler(base *BaseHandler, documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{BaseHandler: base, documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/documents/:id", middleware.AuthMiddleware(), h.Detach)
}

func (h *DocumentHandler) Detach(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.documentService.DetachDocument(c.Request.Context(), h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// formFiles extracts the uploaded files from a multipart form, in form
// order, along with the shared descriptive metadata fields. The returned
// cleanup closes every opened file.
func formFiles(c *gin.Context) ([]*services.FileUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, errors.New("invalid multipart form: " + err.Error())
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil, errors.New("no files provided under the 'files' field")
	}

	meta := dto.DocumentMetadata{
		DisplayName:  c.PostForm("display_name"),
		DocumentType: c.PostForm("document_type"),
		Issuer:       c.PostForm("issuer"),
		IssueDate:    c.PostForm("issue_date"),
	}

	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]*services.FileUpload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			cleanup()
			return nil, nil, errors.New("failed to open uploaded file: " + err.Error())
		}
		opened = append(opened, f)

		fileMeta := meta
		if len(headers) > 1 {
			// A shared display name would collide across files.
			fileMeta.DisplayName = ""
		}

		files = append(files, &services.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      f,
			Meta:        fileMeta,
		})
	}

	return files, cleanup, nil
}
