package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/storage"
	"fintrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.TransactionResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string, query *dto.TransactionListQuery) (*dto.TransactionListResponse, error)
	Update(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id, userID string) error
	AttachReceipt(ctx context.Context, db *gorm.DB, id, userID, filename, contentType string, reader io.Reader) (*dto.TransactionResponse, error)
	SpendingByCategory(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) ([]dto.CategorySpendingResponse, error)

	CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, db *gorm.DB, categoryType string) ([]dto.CategoryResponse, error)

	CreateBankAccount(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error)
	ListBankAccounts(ctx context.Context, db *gorm.DB, userID string) ([]dto.BankAccountResponse, error)
	UpdateBankAccount(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error)
	DeleteBankAccount(ctx context.Context, db *gorm.DB, id, userID string) error
}

type TransactionServiceImpl struct {
	txnRepo  repositories.TransactionRepository
	bankRepo repositories.BankAccountRepository
	files    storage.Storage
}

func NewTransactionService(
	txnRepo repositories.TransactionRepository,
	bankRepo repositories.BankAccountRepository,
	files storage.Storage,
) TransactionService {
	return &TransactionServiceImpl{txnRepo: txnRepo, bankRepo: bankRepo, files: files}
}

func (s *TransactionServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.txnRepo.FindCategoryByID(db, *req.CategoryID); err != nil {
			return nil, apperrors.ErrCategoryNotFound
		}
	}
	if req.BankAccountID != nil {
		if _, err := s.bankRepo.FindByID(db, *req.BankAccountID, userID); err != nil {
			return nil, apperrors.ErrBankAccountNotFound
		}
	}

	txn := &models.Transaction{
		UserID:             userID,
		Amount:             req.Amount,
		Description:        req.Description,
		TransactionDate:    req.TransactionDate,
		CategoryID:         req.CategoryID,
		TransactionType:    models.TransactionType(req.TransactionType),
		PaymentMethod:      req.PaymentMethod,
		UPIID:              req.UPIID,
		BankAccountID:      req.BankAccountID,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
		IsTaxDeductible:    req.IsTaxDeductible,
		TaxSection:         req.TaxSection,
		GSTApplicable:      req.GSTApplicable,
		HSNSACCode:         req.HSNSACCode,
		Notes:              req.Notes,
	}
	if req.GSTAmount != nil {
		txn.GSTAmount = decimal.NewNullDecimal(*req.GSTAmount)
	}

	if err := s.txnRepo.Create(db, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(ctx, db, txn.ID, userID)
}

func (s *TransactionServiceImpl) Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildTransactionResponse(txn), nil
}

func (s *TransactionServiceImpl) List(ctx context.Context, db *gorm.DB, userID string, query *dto.TransactionListQuery) (*dto.TransactionListResponse, error) {
	filter, err := buildTransactionFilter(query)
	if err != nil {
		return nil, err
	}

	txns, total, err := s.txnRepo.FindWithFilter(db, userID, *filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, *buildTransactionResponse(&txns[i]))
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.TransactionListResponse{
		Items: items,
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.CategoryID != nil {
		if _, err := s.txnRepo.FindCategoryByID(db, *req.CategoryID); err != nil {
			return nil, apperrors.ErrCategoryNotFound
		}
		txn.CategoryID = req.CategoryID
	}
	if req.BankAccountID != nil {
		if _, err := s.bankRepo.FindByID(db, *req.BankAccountID, userID); err != nil {
			return nil, apperrors.ErrBankAccountNotFound
		}
		txn.BankAccountID = req.BankAccountID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.TransactionType != nil {
		txn.TransactionType = models.TransactionType(*req.TransactionType)
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		txn.PaymentMethod = *req.PaymentMethod
	}
	if req.UPIID != nil {
		txn.UPIID = *req.UPIID
	}
	if req.IsRecurring != nil {
		txn.IsRecurring = *req.IsRecurring
	}
	if req.RecurringFrequency != nil {
		txn.RecurringFrequency = *req.RecurringFrequency
	}
	if req.IsTaxDeductible != nil {
		txn.IsTaxDeductible = *req.IsTaxDeductible
	}
	if req.TaxSection != nil {
		txn.TaxSection = *req.TaxSection
	}
	if req.GSTApplicable != nil {
		txn.GSTApplicable = *req.GSTApplicable
	}
	if req.GSTAmount != nil {
		txn.GSTAmount = decimal.NewNullDecimal(*req.GSTAmount)
	}
	if req.HSNSACCode != nil {
		txn.HSNSACCode = *req.HSNSACCode
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}

	txn.Category = nil
	txn.BankAccount = nil
	if err := s.txnRepo.Update(db, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(ctx, db, id, userID)
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, db *gorm.DB, id, userID string) error {
	if err := s.txnRepo.Delete(db, id, userID); err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TransactionServiceImpl) AttachReceipt(ctx context.Context, db *gorm.DB, id, userID, filename, contentType string, reader io.Reader) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	path := fmt.Sprintf("receipts/%s/%s", userID, storage.UniqueFilename(filename))
	if err := s.files.Save(ctx, path, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.files.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	txn.ReceiptURL = url
	txn.Category = nil
	txn.BankAccount = nil
	if err := s.txnRepo.Update(db, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "receipt attached", "transaction_id", id)
	return s.Get(ctx, db, id, userID)
}

func (s *TransactionServiceImpl) SpendingByCategory(ctx context.Context, db *gorm.DB, userID string, from, to time.Time) ([]dto.CategorySpendingResponse, error) {
	rows, err := s.txnRepo.SummarizeByCategory(db, userID, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summary := make([]dto.CategorySpendingResponse, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, dto.CategorySpendingResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total,
			Count:        row.Count,
		})
	}
	return summary, nil
}

func (s *TransactionServiceImpl) CreateCategory(ctx context.Context, db *gorm.DB, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.TransactionCategory{
		Name:            req.Name,
		Description:     req.Description,
		CategoryType:    models.CategoryType(req.CategoryType),
		IsTaxDeductible: req.IsTaxDeductible,
		TaxSection:      req.TaxSection,
		Icon:            req.Icon,
	}
	if err := s.txnRepo.CreateCategory(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCategoryResponse(category), nil
}

func (s *TransactionServiceImpl) ListCategories(ctx context.Context, db *gorm.DB, categoryType string) ([]dto.CategoryResponse, error) {
	categories, err := s.txnRepo.FindCategories(db, models.CategoryType(categoryType))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *buildCategoryResponse(&categories[i]))
	}
	return out, nil
}

func (s *TransactionServiceImpl) CreateBankAccount(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateBankAccountRequest) (*dto.BankAccountResponse, error) {
	account := &models.BankAccount{
		UserID:        userID,
		AccountName:   req.AccountName,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		AccountType:   req.AccountType,
		Balance:       req.Balance,
	}
	if err := s.bankRepo.Create(db, account); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildBankAccountResponse(account), nil
}

func (s *TransactionServiceImpl) ListBankAccounts(ctx context.Context, db *gorm.DB, userID string) ([]dto.BankAccountResponse, error) {
	accounts, err := s.bankRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.BankAccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, *buildBankAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (s *TransactionServiceImpl) UpdateBankAccount(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateBankAccountRequest) (*dto.BankAccountResponse, error) {
	account, err := s.bankRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBankAccountNotFound) {
			return nil, apperrors.ErrBankAccountNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.IFSCCode != nil {
		account.IFSCCode = *req.IFSCCode
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}

	if err := s.bankRepo.Update(db, account); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildBankAccountResponse(account), nil
}

func (s *TransactionServiceImpl) DeleteBankAccount(ctx context.Context, db *gorm.DB, id, userID string) error {
	if err := s.bankRepo.Delete(db, id, userID); err != nil {
		if apperrors.Is(err, repositories.ErrBankAccountNotFound) {
			return apperrors.ErrBankAccountNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func buildTransactionFilter(query *dto.TransactionListQuery) (*repositories.TransactionFilter, error) {
	filter := &repositories.TransactionFilter{
		CategoryID:      query.CategoryID,
		TransactionType: models.TransactionType(query.TransactionType),
		IsTaxDeductible: query.IsTaxDeductible,
		GSTApplicable:   query.GSTApplicable,
		Search:          query.Search,
		Page:            query.Page,
		PageSize:        query.PageSize,
	}

	if query.StartDate != "" {
		t, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"start_date": "must be YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if query.EndDate != "" {
		t, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"end_date": "must be YYYY-MM-DD"})
		}
		// Inclusive end of day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}
	if query.MinAmount != "" {
		d, err := decimal.NewFromString(query.MinAmount)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"min_amount": "must be a number"})
		}
		filter.MinAmount = &d
	}
	if query.MaxAmount != "" {
		d, err := decimal.NewFromString(query.MaxAmount)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"max_amount": "must be a number"})
		}
		filter.MaxAmount = &d
	}

	return filter, nil
}

func buildTransactionResponse(txn *models.Transaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:                 txn.ID,
		Amount:             txn.Amount,
		TransactionType:    string(txn.TransactionType),
		TransactionDate:    txn.TransactionDate,
		Description:        txn.Description,
		CategoryID:         txn.CategoryID,
		BankAccountID:      txn.BankAccountID,
		PaymentMethod:      txn.PaymentMethod,
		UPIID:              txn.UPIID,
		IsRecurring:        txn.IsRecurring,
		RecurringFrequency: txn.RecurringFrequency,
		IsTaxDeductible:    txn.IsTaxDeductible,
		TaxSection:         txn.TaxSection,
		GSTApplicable:      txn.GSTApplicable,
		HSNSACCode:         txn.HSNSACCode,
		ReceiptURL:         txn.ReceiptURL,
		Notes:              txn.Notes,
		CreatedAt:          txn.CreatedAt,
	}
	if txn.GSTAmount.Valid {
		resp.GSTAmount = &txn.GSTAmount.Decimal
	}
	if txn.Category != nil {
		resp.Category = buildCategoryResponse(txn.Category)
	}
	return resp
}

func buildCategoryResponse(category *models.TransactionCategory) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:              category.ID,
		Name:            category.Name,
		Description:     category.Description,
		CategoryType:    string(category.CategoryType),
		IsTaxDeductible: category.IsTaxDeductible,
		TaxSection:      category.TaxSection,
		Icon:            category.Icon,
	}
}

func buildBankAccountResponse(account *models.BankAccount) *dto.BankAccountResponse {
	return &dto.BankAccountResponse{
		ID:            account.ID,
		AccountName:   account.AccountName,
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
		IFSCCode:      account.IFSCCode,
		AccountType:   account.AccountType,
		Balance:       account.Balance,
		CreatedAt:     account.CreatedAt,
	}
}
