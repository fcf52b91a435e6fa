package repositories

import (
	"errors"
	"time"

	"fintrack_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
)

// TransactionFilter narrows transaction listings. Nil pointers mean "no
// constraint".
type TransactionFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	CategoryID      string
	TransactionType models.TransactionType
	IsTaxDeductible *bool
	GSTApplicable   *bool
	Search          string
	Page            int
	PageSize        int
}

// CategorySpending is one row of the per-category spending summary.
type CategorySpending struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

type TransactionRepository interface {
	Create(db *gorm.DB, txn *models.Transaction) error
	FindByID(db *gorm.DB, id, userID string) (*models.Transaction, error)
	Update(db *gorm.DB, txn *models.Transaction) error
	Delete(db *gorm.DB, id, userID string) error
	FindWithFilter(db *gorm.DB, userID string, filter TransactionFilter) ([]models.Transaction, int64, error)
	SummarizeByCategory(db *gorm.DB, userID string, from, to time.Time) ([]CategorySpending, error)
	SumAmountByType(db *gorm.DB, userID string, txnType models.TransactionType, from, to time.Time) (decimal.Decimal, error)
	FindTaxDeductibleInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Transaction, error)

	CreateCategory(db *gorm.DB, category *models.TransactionCategory) error
	FindCategoryByID(db *gorm.DB, id string) (*models.TransactionCategory, error)
	FindCategories(db *gorm.DB, categoryType models.CategoryType) ([]models.TransactionCategory, error)
	UpdateCategory(db *gorm.DB, category *models.TransactionCategory) error
	DeleteCategory(db *gorm.DB, id string) error
}

type TransactionRepositoryImpl struct{}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r *TransactionRepositoryImpl) Create(db *gorm.DB, txn *models.Transaction) error {
	return db.Create(txn).Error
}

// FindByID scopes the lookup to the owning user; another user's transaction
// ID behaves exactly like a missing one.
func (r *TransactionRepositoryImpl) FindByID(db *gorm.DB, id, userID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := db.Preload("Category").Preload("BankAccount").
		First(&txn, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepositoryImpl) Update(db *gorm.DB, txn *models.Transaction) error {
	result := db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", txn.ID, txn.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(txn)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepositoryImpl) FindWithFilter(db *gorm.DB, userID string, filter TransactionFilter) ([]models.Transaction, int64, error) {
	query := db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", filter.MaxAmount)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.TransactionType != "" {
		query = query.Where("transaction_type = ?", filter.TransactionType)
	}
	if filter.IsTaxDeductible != nil {
		query = query.Where("is_tax_deductible = ?", *filter.IsTaxDeductible)
	}
	if filter.GSTApplicable != nil {
		query = query.Where("gst_applicable = ?", *filter.GSTApplicable)
	}
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var txns []models.Transaction
	err := query.Preload("Category").
		Order("transaction_date DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&txns).Error

	return txns, total, err
}

func (r *TransactionRepositoryImpl) SummarizeByCategory(db *gorm.DB, userID string, from, to time.Time) ([]CategorySpending, error) {
	type row struct {
		CategoryID   string
		CategoryName string
		Total        decimal.Decimal
		Count        int64
	}

	var rows []row
	err := db.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, transaction_categories.name AS category_name, SUM(transactions.amount) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN transaction_categories ON transaction_categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.transaction_date BETWEEN ? AND ?", userID, from, to).
		Group("transactions.category_id, transaction_categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make([]CategorySpending, 0, len(rows))
	for _, r := range rows {
		name := r.CategoryName
		if r.CategoryID == "" {
			name = "uncategorized"
		}
		summary = append(summary, CategorySpending{
			CategoryID:   r.CategoryID,
			CategoryName: name,
			Total:        r.Total,
			Count:        r.Count,
		})
	}
	return summary, nil
}

func (r *TransactionRepositoryImpl) SumAmountByType(db *gorm.DB, userID string, txnType models.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND transaction_type = ? AND transaction_date BETWEEN ? AND ?", userID, txnType, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *TransactionRepositoryImpl) FindTaxDeductibleInRange(db *gorm.DB, userID string, from, to time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Where("user_id = ? AND is_tax_deductible = ? AND transaction_date BETWEEN ? AND ?", userID, true, from, to).
		Find(&txns).Error
	return txns, err
}

// Category operations

func (r *TransactionRepositoryImpl) CreateCategory(db *gorm.DB, category *models.TransactionCategory) error {
	return db.Create(category).Error
}

func (r *TransactionRepositoryImpl) FindCategoryByID(db *gorm.DB, id string) (*models.TransactionCategory, error) {
	var category models.TransactionCategory
	err := db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *TransactionRepositoryImpl) FindCategories(db *gorm.DB, categoryType models.CategoryType) ([]models.TransactionCategory, error) {
	query := db.Model(&models.TransactionCategory{})
	if categoryType != "" {
		query = query.Where("category_type = ?", categoryType)
	}

	var categories []models.TransactionCategory
	err := query.Order("name").Find(&categories).Error
	return categories, err
}

func (r *TransactionRepositoryImpl) UpdateCategory(db *gorm.DB, category *models.TransactionCategory) error {
	result := db.Model(&models.TransactionCategory{}).
		Where("id = ?", category.ID).
		Select("*").Omit("id", "created_at").
		Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *TransactionRepositoryImpl) DeleteCategory(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.TransactionCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
