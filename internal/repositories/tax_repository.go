package repositories

import (
	"errors"

	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTaxReturnNotFound = errors.New("tax return not found")
	ErrDeductionNotFound = errors.New("tax deduction not found")
)

type TaxReturnFilter struct {
	FiscalYear   string
	FilingStatus models.FilingStatus
	Page         int
	PageSize     int
}

type TaxRepository interface {
	Create(db *gorm.DB, taxReturn *models.TaxReturn) error
	FindByID(db *gorm.DB, id, userID string) (*models.TaxReturn, error)
	FindWithFilter(db *gorm.DB, userID string, filter TaxReturnFilter) ([]models.TaxReturn, error)
	Update(db *gorm.DB, taxReturn *models.TaxReturn) error
	Delete(db *gorm.DB, id, userID string) error

	CreateDeduction(db *gorm.DB, deduction *models.TaxDeduction) error
	FindDeductionByID(db *gorm.DB, id string) (*models.TaxDeduction, error)
	FindDeductions(db *gorm.DB, taxReturnID string) ([]models.TaxDeduction, error)
	DeleteDeduction(db *gorm.DB, id string) error
}

type TaxRepositoryImpl struct{}

func NewTaxRepository() TaxRepository {
	return &TaxRepositoryImpl{}
}

func (r *TaxRepositoryImpl) Create(db *gorm.DB, taxReturn *models.TaxReturn) error {
	return db.Create(taxReturn).Error
}

func (r *TaxRepositoryImpl) FindByID(db *gorm.DB, id, userID string) (*models.TaxReturn, error) {
	var taxReturn models.TaxReturn
	err := db.Preload("Deductions").
		First(&taxReturn, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxReturnNotFound
		}
		return nil, err
	}
	return &taxReturn, nil
}

func (r *TaxRepositoryImpl) FindWithFilter(db *gorm.DB, userID string, filter TaxReturnFilter) ([]models.TaxReturn, error) {
	query := db.Where("user_id = ?", userID)
	if filter.FiscalYear != "" {
		query = query.Where("fiscal_year = ?", filter.FiscalYear)
	}
	if filter.FilingStatus != "" {
		query = query.Where("filing_status = ?", filter.FilingStatus)
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var returns []models.TaxReturn
	err := query.Order("fiscal_year DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&returns).Error
	return returns, err
}

func (r *TaxRepositoryImpl) Update(db *gorm.DB, taxReturn *models.TaxReturn) error {
	result := db.Model(&models.TaxReturn{}).
		Where("id = ? AND user_id = ?", taxReturn.ID, taxReturn.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(taxReturn)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaxReturnNotFound
	}
	return nil
}

func (r *TaxRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tax_return_id = ?", id).Delete(&models.TaxDeduction{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.TaxReturn{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaxReturnNotFound
		}
		return nil
	})
}

func (r *TaxRepositoryImpl) CreateDeduction(db *gorm.DB, deduction *models.TaxDeduction) error {
	return db.Create(deduction).Error
}

func (r *TaxRepositoryImpl) FindDeductionByID(db *gorm.DB, id string) (*models.TaxDeduction, error) {
	var deduction models.TaxDeduction
	err := db.First(&deduction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeductionNotFound
		}
		return nil, err
	}
	return &deduction, nil
}

func (r *TaxRepositoryImpl) FindDeductions(db *gorm.DB, taxReturnID string) ([]models.TaxDeduction, error) {
	var deductions []models.TaxDeduction
	err := db.Where("tax_return_id = ?", taxReturnID).Order("section").Find(&deductions).Error
	return deductions, err
}

func (r *TaxRepositoryImpl) DeleteDeduction(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.TaxDeduction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeductionNotFound
	}
	return nil
}
