package repositories

import (
	"errors"

	"fintrack_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBankAccountNotFound = errors.New("bank account not found")

type BankAccountRepository interface {
	Create(db *gorm.DB, account *models.BankAccount) error
	FindByID(db *gorm.DB, id, userID string) (*models.BankAccount, error)
	FindByUser(db *gorm.DB, userID string) ([]models.BankAccount, error)
	Update(db *gorm.DB, account *models.BankAccount) error
	Delete(db *gorm.DB, id, userID string) error
}

type BankAccountRepositoryImpl struct{}

func NewBankAccountRepository() BankAccountRepository {
	return &BankAccountRepositoryImpl{}
}

func (r *BankAccountRepositoryImpl) Create(db *gorm.DB, account *models.BankAccount) error {
	return db.Create(account).Error
}

func (r *BankAccountRepositoryImpl) FindByID(db *gorm.DB, id, userID string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := db.First(&account, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *BankAccountRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := db.Where("user_id = ?", userID).Order("account_name").Find(&accounts).Error
	return accounts, err
}

func (r *BankAccountRepositoryImpl) Update(db *gorm.DB, account *models.BankAccount) error {
	result := db.Model(&models.BankAccount{}).
		Where("id = ? AND user_id = ?", account.ID, account.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(account)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBankAccountNotFound
	}
	return nil
}

func (r *BankAccountRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.BankAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBankAccountNotFound
	}
	return nil
}
