package services

import (
	"context"
	"fmt"
	"io"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/storage"
	"fintrack_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DocumentUpload carries the metadata of an incoming file.
type DocumentUpload struct {
	DocumentType      string
	DocumentName      string
	ContentType       string
	Size              int64
	FiscalYear        string
	RelatedEntityType string
	RelatedEntityID   *string
	Notes             string
}

type DocumentService interface {
	Upload(ctx context.Context, db *gorm.DB, userID string, upload *DocumentUpload, reader io.Reader) (*dto.DocumentResponse, error)
	Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.DocumentResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string, query *dto.DocumentListQuery) ([]dto.DocumentResponse, error)
	Download(ctx context.Context, db *gorm.DB, id, userID string) (io.ReadCloser, *models.Document, error)
	Delete(ctx context.Context, db *gorm.DB, id, userID string) error
}

type DocumentServiceImpl struct {
	docRepo      repositories.DocumentRepository
	files        storage.Storage
	maxSize      int64
	allowedTypes map[string]bool
}

func NewDocumentService(docRepo repositories.DocumentRepository, files storage.Storage, maxSize int64, allowedTypes []string) DocumentService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &DocumentServiceImpl{
		docRepo:      docRepo,
		files:        files,
		maxSize:      maxSize,
		allowedTypes: allowed,
	}
}

func (s *DocumentServiceImpl) Upload(ctx context.Context, db *gorm.DB, userID string, upload *DocumentUpload, reader io.Reader) (*dto.DocumentResponse, error) {
	if s.maxSize > 0 && upload.Size > s.maxSize {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxSize),
		})
	}
	if len(s.allowedTypes) > 0 && !s.allowedTypes[upload.ContentType] {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("content type %s is not allowed", upload.ContentType),
		})
	}

	docType := models.DocumentType(upload.DocumentType)
	if docType == "" {
		docType = models.DocumentTypeOther
	}

	path := fmt.Sprintf("documents/%s/%s", userID, storage.UniqueFilename(upload.DocumentName))
	if err := s.files.Save(ctx, path, reader, upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	document := &models.Document{
		UserID:            userID,
		DocumentType:      docType,
		DocumentName:      upload.DocumentName,
		FilePath:          path,
		FileSize:          upload.Size,
		MimeType:          upload.ContentType,
		FiscalYear:        upload.FiscalYear,
		RelatedEntityType: upload.RelatedEntityType,
		RelatedEntityID:   upload.RelatedEntityID,
		Notes:             upload.Notes,
	}

	if err := s.docRepo.Create(db, document); err != nil {
		// The orphaned file is cleaned up; the upload failed as a whole.
		if delErr := s.files.Delete(ctx, path); delErr != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned upload", delErr, "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "document uploaded", "document_id", document.ID, "type", docType)
	return s.buildResponse(ctx, document), nil
}

func (s *DocumentServiceImpl) Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.DocumentResponse, error) {
	document, err := s.docRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return s.buildResponse(ctx, document), nil
}

func (s *DocumentServiceImpl) List(ctx context.Context, db *gorm.DB, userID string, query *dto.DocumentListQuery) ([]dto.DocumentResponse, error) {
	filter := repositories.DocumentFilter{
		DocumentType: models.DocumentType(query.DocumentType),
		FiscalYear:   query.FiscalYear,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}

	documents, err := s.docRepo.FindWithFilter(db, userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.DocumentResponse, 0, len(documents))
	for i := range documents {
		out = append(out, *s.buildResponse(ctx, &documents[i]))
	}
	return out, nil
}

func (s *DocumentServiceImpl) Download(ctx context.Context, db *gorm.DB, id, userID string) (io.ReadCloser, *models.Document, error) {
	document, err := s.docRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, nil, apperrors.ErrDocumentNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reader, err := s.files.Get(ctx, document.FilePath)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return reader, document, nil
}

func (s *DocumentServiceImpl) Delete(ctx context.Context, db *gorm.DB, id, userID string) error {
	document, err := s.docRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrDocumentNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.docRepo.Delete(db, id, userID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.files.Delete(ctx, document.FilePath); err != nil {
		logger.CtxWithError(ctx, "failed to delete stored file", err, "path", document.FilePath)
	}
	return nil
}

func (s *DocumentServiceImpl) buildResponse(ctx context.Context, document *models.Document) *dto.DocumentResponse {
	url, err := s.files.GetURL(ctx, document.FilePath)
	if err != nil {
		logger.CtxWithError(ctx, "failed to build file URL", err, "path", document.FilePath)
	}

	return &dto.DocumentResponse{
		ID:                document.ID,
		DocumentType:      string(document.DocumentType),
		DocumentName:      document.DocumentName,
		FileURL:           url,
		FileSize:          document.FileSize,
		MimeType:          document.MimeType,
		FiscalYear:        document.FiscalYear,
		RelatedEntityType: document.RelatedEntityType,
		RelatedEntityID:   document.RelatedEntityID,
		Notes:             document.Notes,
		CreatedAt:         document.CreatedAt,
	}
}
