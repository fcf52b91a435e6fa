package repositories

import (
	"errors"
	"time"

	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvestmentNotFound     = errors.New("investment not found")
	ErrInvestmentTypeNotFound = errors.New("investment type not found")
)

type InvestmentRepository interface {
	Create(db *gorm.DB, investment *models.Investment) error
	FindByID(db *gorm.DB, id, userID string) (*models.Investment, error)
	FindByUser(db *gorm.DB, userID string, activeOnly bool) ([]models.Investment, error)
	FindTaxSavingInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Investment, error)
	Update(db *gorm.DB, investment *models.Investment) error
	Delete(db *gorm.DB, id, userID string) error

	CreateType(db *gorm.DB, investmentType *models.InvestmentType) error
	FindTypeByID(db *gorm.DB, id string) (*models.InvestmentType, error)
	FindTypes(db *gorm.DB) ([]models.InvestmentType, error)

	CreateTransaction(db *gorm.DB, txn *models.InvestmentTransaction) error
	FindTransactions(db *gorm.DB, investmentID string) ([]models.InvestmentTransaction, error)
}

type InvestmentRepositoryImpl struct{}

func NewInvestmentRepository() InvestmentRepository {
	return &InvestmentRepositoryImpl{}
}

func (r *InvestmentRepositoryImpl) Create(db *gorm.DB, investment *models.Investment) error {
	return db.Create(investment).Error
}

func (r *InvestmentRepositoryImpl) FindByID(db *gorm.DB, id, userID string) (*models.Investment, error) {
	var investment models.Investment
	err := db.Preload("InvestmentType").
		First(&investment, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestmentNotFound
		}
		return nil, err
	}
	return &investment, nil
}

func (r *InvestmentRepositoryImpl) FindByUser(db *gorm.DB, userID string, activeOnly bool) ([]models.Investment, error) {
	query := db.Preload("InvestmentType").Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var investments []models.Investment
	err := query.Order("investment_date DESC").Find(&investments).Error
	return investments, err
}

func (r *InvestmentRepositoryImpl) FindTaxSavingInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Investment, error) {
	var investments []models.Investment
	err := db.Where("user_id = ? AND is_tax_saving = ? AND investment_date BETWEEN ? AND ?", userID, true, from, to).
		Find(&investments).Error
	return investments, err
}

func (r *InvestmentRepositoryImpl) Update(db *gorm.DB, investment *models.Investment) error {
	result := db.Model(&models.Investment{}).
		Where("id = ? AND user_id = ?", investment.ID, investment.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(investment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvestmentNotFound
	}
	return nil
}

func (r *InvestmentRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investment_id = ?", id).Delete(&models.InvestmentTransaction{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Investment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvestmentNotFound
		}
		return nil
	})
}

func (r *InvestmentRepositoryImpl) CreateType(db *gorm.DB, investmentType *models.InvestmentType) error {
	return db.Create(investmentType).Error
}

func (r *InvestmentRepositoryImpl) FindTypeByID(db *gorm.DB, id string) (*models.InvestmentType, error) {
	var investmentType models.InvestmentType
	err := db.First(&investmentType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestmentTypeNotFound
		}
		return nil, err
	}
	return &investmentType, nil
}

func (r *InvestmentRepositoryImpl) FindTypes(db *gorm.DB) ([]models.InvestmentType, error) {
	var types []models.InvestmentType
	err := db.Order("name").Find(&types).Error
	return types, err
}

func (r *InvestmentRepositoryImpl) CreateTransaction(db *gorm.DB, txn *models.InvestmentTransaction) error {
	return db.Create(txn).Error
}

func (r *InvestmentRepositoryImpl) FindTransactions(db *gorm.DB, investmentID string) ([]models.InvestmentTransaction, error) {
	var txns []models.InvestmentTransaction
	err := db.Where("investment_id = ?", investmentID).
		Order("transaction_date DESC").Find(&txns).Error
	return txns, err
}
