package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"careassoc_backend/internal/logger"
	"careassoc_backend/internal/storage"
	"careassoc_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored objects over HTTP. Only useful with the local
// backend; the s3 backend hands out direct URLs instead.
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{BaseHandler: base, store: store}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	ctx := c.Request.Context()

	exists, err := h.store.Exists(ctx, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.GatewayError(err))
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.ErrNotFound(nil))
		return
	}

	reader, err := h.store.Get(ctx, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.GatewayError(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; nothing left to do but log.
		logger.CtxWarn(ctx, "aborted while streaming file", "path", path, "error", err)
	}
}
