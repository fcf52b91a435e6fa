package repositories

import (
	"errors"

	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentFilter struct {
	DocumentType models.DocumentType
	FiscalYear   string
	Page         int
	PageSize     int
}

type DocumentRepository interface {
	Create(db *gorm.DB, document *models.Document) error
	FindByID(db *gorm.DB, id, userID string) (*models.Document, error)
	FindWithFilter(db *gorm.DB, userID string, filter DocumentFilter) ([]models.Document, error)
	Delete(db *gorm.DB, id, userID string) error
}

type DocumentRepositoryImpl struct{}

func NewDocumentRepository() DocumentRepository {
	return &DocumentRepositoryImpl{}
}

func (r *DocumentRepositoryImpl) Create(db *gorm.DB, document *models.Document) error {
	return db.Create(document).Error
}

func (r *DocumentRepositoryImpl) FindByID(db *gorm.DB, id, userID string) (*models.Document, error) {
	var document models.Document
	err := db.First(&document, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *DocumentRepositoryImpl) FindWithFilter(db *gorm.DB, userID string, filter DocumentFilter) ([]models.Document, error) {
	query := db.Where("user_id = ?", userID)
	if filter.DocumentType != "" {
		query = query.Where("document_type = ?", filter.DocumentType)
	}
	if filter.FiscalYear != "" {
		query = query.Where("fiscal_year = ?", filter.FiscalYear)
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var documents []models.Document
	err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&documents).Error
	return documents, err
}

func (r *DocumentRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
