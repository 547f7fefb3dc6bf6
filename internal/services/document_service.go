package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"careassoc_backend/internal/config"
	"careassoc_backend/internal/logger"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/internal/storage"
	"careassoc_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileUpload is one file to attach: the bytes plus what the client told us
// about them.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
	Meta        dto.DocumentMetadata
}

type DocumentService interface {
	// AttachDocument uploads the file, then inserts the metadata row. A
	// failed insert triggers a best-effort delete of the uploaded object.
	AttachDocument(ctx context.Context, db *gorm.DB, userID, ownerType, ownerID string, file *FileUpload) (*models.Document, error)

	// AttachDocuments processes files strictly in order; the first failure
	// aborts the rest and earlier successes stay persisted.
	AttachDocuments(ctx context.Context, db *gorm.DB, userID, ownerType, ownerID string, files []*FileUpload) ([]*models.Document, error)

	// DetachDocument deletes the row first, then best-effort removes the
	// storage object. Deletion is row-authoritative.
	DetachDocument(ctx context.Context, db *gorm.DB, userID, documentID string) error

	ListDocuments(db *gorm.DB, ownerType, ownerID string) ([]models.Document, error)
}

type DocumentServiceImpl struct {
	docRepo       repositories.DocumentRepository
	educationRepo repositories.EducationRepository
	profileRepo   repositories.ProfileRepository
	store         storage.Storage
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	educationRepo repositories.EducationRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
) DocumentService {
	return &DocumentServiceImpl{
		docRepo:       docRepo,
		educationRepo: educationRepo,
		profileRepo:   profileRepo,
		store:         store,
	}
}

func (s *DocumentServiceImpl) AttachDocument(ctx context.Context, db *gorm.DB, userID, ownerType, ownerID string, file *FileUpload) (*models.Document, error) {
	if err := s.authorizeOwner(db, userID, ownerType, ownerID); err != nil {
		return nil, err
	}
	if err := validateUpload(file); err != nil {
		return nil, err
	}

	// Fresh token per upload: identical content uploaded twice yields two
	// distinct objects.
	path := fmt.Sprintf("%s/%s/%s_%s", ownerType, ownerID, uuid.NewString(), filepath.Base(file.Filename))

	if err := s.store.Save(ctx, path, file.Reader, file.ContentType); err != nil {
		return nil, apperrors.GatewayError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		url = ""
	}

	doc := &models.Document{
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Path:         path,
		URL:          url,
		DisplayName:  displayName(file),
		DocumentType: file.Meta.DocumentType,
		Issuer:       file.Meta.Issuer,
		IssueDate:    file.Meta.IssueDate,
		MimeType:     file.ContentType,
		Size:         file.Size,
	}

	if err := s.docRepo.Create(db, doc); err != nil {
		// Roll back the object written above. A failed delete is logged and
		// accepted; a crash before this point still orphans the object.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.Error("failed to delete storage object after metadata insert failure",
				"path", path, "error", delErr)
		}
		return nil, apperrors.GatewayError(err)
	}

	return doc, nil
}

func (s *DocumentServiceImpl) AttachDocuments(ctx context.Context, db *gorm.DB, userID, ownerType, ownerID string, files []*FileUpload) ([]*models.Document, error) {
	attached := make([]*models.Document, 0, len(files))
	for _, file := range files {
		doc, err := s.AttachDocument(ctx, db, userID, ownerType, ownerID, file)
		if err != nil {
			return attached, err
		}
		attached = append(attached, doc)
	}
	return attached, nil
}

func (s *DocumentServiceImpl) DetachDocument(ctx context.Context, db *gorm.DB, userID, documentID string) error {
	doc, err := s.docRepo.FindByID(db, documentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if doc.UserID != userID {
		return apperrors.NewForbiddenError("Document belongs to another user")
	}

	if err := s.docRepo.Delete(db, documentID); err != nil {
		return apperrors.GatewayError(err)
	}

	if err := s.store.Delete(ctx, doc.Path); err != nil {
		logger.Warn("failed to remove storage object for deleted document",
			"document_id", documentID, "path", doc.Path, "error", err)
	}

	return nil
}

func (s *DocumentServiceImpl) ListDocuments(db *gorm.DB, ownerType, ownerID string) ([]models.Document, error) {
	docs, err := s.docRepo.FindByOwner(db, ownerType, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return docs, nil
}

// authorizeOwner verifies the parent record exists and belongs to the
// authenticated user. Client-supplied owner ids are never trusted for writes.
func (s *DocumentServiceImpl) authorizeOwner(db *gorm.DB, userID, ownerType, ownerID string) error {
	switch ownerType {
	case models.DocumentOwnerEducationRecord:
		record, err := s.educationRepo.FindByID(db, ownerID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrEducationRecordNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if record.UserID != userID {
			return apperrors.NewForbiddenError("Education record belongs to another user")
		}
		return nil
	case models.DocumentOwnerInstitution:
		profile, err := s.profileRepo.FindInstitutionByUserID(db, userID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return apperrors.ErrNotFound(err)
			}
			return apperrors.InternalError(err)
		}
		if profile.ID != ownerID {
			return apperrors.NewForbiddenError("Institution profile belongs to another user")
		}
		return nil
	default:
		return apperrors.NewBadRequestError("Unknown document owner type: " + ownerType)
	}
}

func validateUpload(file *FileUpload) error {
	cfg := config.GetConfig()
	if cfg.Upload.MaxSize > 0 && file.Size > cfg.Upload.MaxSize {
		return apperrors.ErrFileTooLarge
	}
	if len(cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range cfg.Upload.AllowedTypes {
			if t == file.ContentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.ErrInvalidFileType
		}
	}
	return nil
}

func displayName(file *FileUpload) string {
	if file.Meta.DisplayName != "" {
		return file.Meta.DisplayName
	}
	return filepath.Base(file.Filename)
}
