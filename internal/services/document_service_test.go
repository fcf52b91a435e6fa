package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T) DocumentService {
	return NewDocumentService(
		repositories.NewDocumentRepository(),
		newTestStorage(t),
		1<<20, // 1 MiB
		[]string{"application/pdf", "image/jpeg", "image/png"},
	)
}

func TestUploadAndDownloadDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "docs@test.com", "some_password_1")

	content := []byte("%PDF-1.4 form 16 content")
	doc, err := svc.Upload(ctx, db, user.ID, &DocumentUpload{
		DocumentType: "form16",
		DocumentName: "form16.pdf",
		ContentType:  "application/pdf",
		Size:         int64(len(content)),
		FiscalYear:   "2024-25",
		Notes:        "Employer form 16",
	}, bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "form16", doc.DocumentType)
	assert.Equal(t, "form16.pdf", doc.DocumentName)
	assert.Equal(t, int64(len(content)), doc.FileSize)
	assert.NotEmpty(t, doc.FileURL)

	reader, stored, err := svc.Download(ctx, db, doc.ID, user.ID)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, "application/pdf", stored.MimeType)
}

func TestUploadDocument_DefaultsToOther(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)

	user := createVerifiedUser(t, db, "docother@test.com", "some_password_1")

	doc, err := svc.Upload(context.Background(), db, user.ID, &DocumentUpload{
		DocumentName: "scan.png",
		ContentType:  "image/png",
		Size:         64,
	}, bytes.NewReader(make([]byte, 64)))
	require.NoError(t, err)
	assert.Equal(t, "other", doc.DocumentType)
}

func TestUploadDocument_Rejections(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "reject@test.com", "some_password_1")

	// Oversized file.
	_, err := svc.Upload(ctx, db, user.ID, &DocumentUpload{
		DocumentName: "huge.pdf",
		ContentType:  "application/pdf",
		Size:         2 << 20,
	}, bytes.NewReader(nil))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	// Disallowed content type.
	_, err = svc.Upload(ctx, db, user.ID, &DocumentUpload{
		DocumentName: "malware.exe",
		ContentType:  "application/octet-stream",
		Size:         128,
	}, bytes.NewReader(make([]byte, 128)))
	require.Error(t, err)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestListDocuments_Filter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "doclist@test.com", "some_password_1")

	uploads := []DocumentUpload{
		{DocumentType: "form16", DocumentName: "form16.pdf", ContentType: "application/pdf", Size: 8, FiscalYear: "2024-25"},
		{DocumentType: "receipt", DocumentName: "receipt.jpg", ContentType: "image/jpeg", Size: 8, FiscalYear: "2024-25"},
		{DocumentType: "form16", DocumentName: "old_form16.pdf", ContentType: "application/pdf", Size: 8, FiscalYear: "2023-24"},
	}
	for i := range uploads {
		_, err := svc.Upload(ctx, db, user.ID, &uploads[i], bytes.NewReader(make([]byte, 8)))
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, db, user.ID, &dto.DocumentListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	form16s, err := svc.List(ctx, db, user.ID, &dto.DocumentListQuery{DocumentType: "form16"})
	require.NoError(t, err)
	assert.Len(t, form16s, 2)

	recent, err := svc.List(ctx, db, user.ID, &dto.DocumentListQuery{FiscalYear: "2024-25"})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestDeleteDocument(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)
	ctx := context.Background()

	user := createVerifiedUser(t, db, "docdel@test.com", "some_password_1")

	doc, err := svc.Upload(ctx, db, user.ID, &DocumentUpload{
		DocumentName: "temp.pdf",
		ContentType:  "application/pdf",
		Size:         8,
	}, bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, db, doc.ID, user.ID))

	_, err = svc.Get(ctx, db, doc.ID, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, _, err = svc.Download(ctx, db, doc.ID, user.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestDocument_OwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDocumentService(t)
	ctx := context.Background()

	owner := createVerifiedUser(t, db, "docowner@test.com", "some_password_1")
	other := createVerifiedUser(t, db, "docother2@test.com", "some_password_1")

	doc, err := svc.Upload(ctx, db, owner.ID, &DocumentUpload{
		DocumentName: "private.pdf",
		ContentType:  "application/pdf",
		Size:         8,
	}, bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)

	_, err = svc.Get(ctx, db, doc.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}
