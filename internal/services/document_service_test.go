package services

import (
	"context"
	"strings"
	"testing"

	"careassoc_backend/internal/models"
	"careassoc_backend/internal/services/dto"
	"careassoc_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docFixture struct {
	svc       DocumentService
	store     *fakeStorage
	docRepo   *fakeDocumentRepo
	eduRepo   *fakeEducationRepo
	profRepo  *fakeProfileRepo
}

func newDocFixture() *docFixture {
	store := newFakeStorage()
	docRepo := newFakeDocumentRepo()
	eduRepo := newFakeEducationRepo()
	profRepo := newFakeProfileRepo()

	eduRepo.records["rec1"] = &models.EducationRecord{
		BaseModel:   models.BaseModel{ID: "rec1"},
		UserID:      "u1",
		Institution: "Nursing College Berlin",
	}

	return &docFixture{
		svc:      NewDocumentService(docRepo, eduRepo, profRepo, store),
		store:    store,
		docRepo:  docRepo,
		eduRepo:  eduRepo,
		profRepo: profRepo,
	}
}

func pdfUpload(name string) *FileUpload {
	return &FileUpload{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        128,
		Reader:      strings.NewReader("pdf bytes"),
		Meta:        dto.DocumentMetadata{DocumentType: "certificate", Issuer: "DRK"},
	}
}

func TestAttachDocumentPersistsRowAndObject(t *testing.T) {
	f := newDocFixture()

	doc, err := f.svc.AttachDocument(context.Background(), nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.Path, "education_record/rec1/"))
	assert.True(t, strings.HasSuffix(doc.Path, "_cert.pdf"))
	assert.Equal(t, "http://files.local/"+doc.Path, doc.URL)
	assert.Len(t, f.store.saved, 1)
	assert.Len(t, f.docRepo.docs, 1)
	assert.Empty(t, f.store.deleted)
}

// Two uploads of identical content must produce two distinct objects.
func TestAttachDocumentPathsAreUnique(t *testing.T) {
	f := newDocFixture()
	ctx := context.Background()

	doc1, err := f.svc.AttachDocument(ctx, nil, "u1", models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.NoError(t, err)
	doc2, err := f.svc.AttachDocument(ctx, nil, "u1", models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.NoError(t, err)

	assert.NotEqual(t, doc1.Path, doc2.Path)
}

// A failed metadata insert must delete exactly the object written for it.
func TestAttachDocumentRollsBackOnInsertFailure(t *testing.T) {
	f := newDocFixture()
	f.docRepo.failOnCall = 1

	_, err := f.svc.AttachDocument(context.Background(), nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.Error(t, err)

	require.Len(t, f.store.saved, 1)
	require.Len(t, f.store.deleted, 1)
	assert.Equal(t, f.store.saved[0], f.store.deleted[0])
	assert.Empty(t, f.docRepo.docs)
}

// A failed compensating delete is logged and accepted, not escalated.
func TestAttachDocumentRollbackDeleteFailureIsSwallowed(t *testing.T) {
	f := newDocFixture()
	f.docRepo.failOnCall = 1
	f.store.deleteErr = assert.AnError

	_, err := f.svc.AttachDocument(context.Background(), nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.Error(t, err)

	// The original insert failure is what comes back, not the delete failure.
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "insert failed")
}

// A failed upload means no insert is attempted and nothing to roll back.
func TestAttachDocumentUploadFailureSkipsInsert(t *testing.T) {
	f := newDocFixture()
	f.store.saveErr = assert.AnError

	_, err := f.svc.AttachDocument(context.Background(), nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.Error(t, err)

	assert.Zero(t, f.docRepo.createCalls)
	assert.Empty(t, f.store.deleted)
}

// Three files, second insert fails: first stays persisted, second's object
// is rolled back, third is never attempted.
func TestAttachDocumentsSequentialAbort(t *testing.T) {
	f := newDocFixture()
	f.docRepo.failOnCall = 2

	files := []*FileUpload{
		pdfUpload("one.pdf"),
		pdfUpload("two.pdf"),
		pdfUpload("three.pdf"),
	}

	attached, err := f.svc.AttachDocuments(context.Background(), nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", files)
	require.Error(t, err)

	require.Len(t, attached, 1)
	assert.True(t, strings.HasSuffix(attached[0].Path, "_one.pdf"))
	assert.Len(t, f.docRepo.docs, 1)

	// Two uploads happened, the second was rolled back, the third never ran.
	require.Len(t, f.store.saved, 2)
	require.Len(t, f.store.deleted, 1)
	assert.Equal(t, f.store.saved[1], f.store.deleted[0])
}

func TestAttachDocumentRejectsForeignEducationRecord(t *testing.T) {
	f := newDocFixture()

	_, err := f.svc.AttachDocument(context.Background(), nil, "intruder",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Empty(t, f.store.saved)
}

func TestAttachDocumentValidatesTypeAndSize(t *testing.T) {
	f := newDocFixture()
	ctx := context.Background()

	exe := pdfUpload("tool.exe")
	exe.ContentType = "application/x-msdownload"
	_, err := f.svc.AttachDocument(ctx, nil, "u1", models.DocumentOwnerEducationRecord, "rec1", exe)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)

	huge := pdfUpload("huge.pdf")
	huge.Size = 100 * 1024 * 1024
	_, err = f.svc.AttachDocument(ctx, nil, "u1", models.DocumentOwnerEducationRecord, "rec1", huge)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

	assert.Empty(t, f.store.saved)
}

// Deletion is row-authoritative: a failed storage removal is logged, the row
// stays deleted and the operation still succeeds.
func TestDetachDocumentRowAuthoritative(t *testing.T) {
	f := newDocFixture()
	ctx := context.Background()

	doc, err := f.svc.AttachDocument(ctx, nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.NoError(t, err)

	f.store.deleteErr = assert.AnError

	require.NoError(t, f.svc.DetachDocument(ctx, nil, "u1", doc.ID))

	assert.Empty(t, f.docRepo.docs)
	// The storage removal was attempted even though it failed.
	assert.Contains(t, f.store.deleted, doc.Path)
}

func TestDetachDocumentForbiddenForOtherUser(t *testing.T) {
	f := newDocFixture()
	ctx := context.Background()

	doc, err := f.svc.AttachDocument(ctx, nil, "u1",
		models.DocumentOwnerEducationRecord, "rec1", pdfUpload("cert.pdf"))
	require.NoError(t, err)

	err = f.svc.DetachDocument(ctx, nil, "intruder", doc.ID)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Len(t, f.docRepo.docs, 1)
}
