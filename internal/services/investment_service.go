package services

import (
	"context"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateInvestmentRequest) (*dto.InvestmentResponse, error)
	Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.InvestmentResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string, activeOnly bool) ([]dto.InvestmentResponse, error)
	Update(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateInvestmentRequest) (*dto.InvestmentResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id, userID string) error

	ListTypes(ctx context.Context, db *gorm.DB) ([]dto.InvestmentTypeResponse, error)

	AddTransaction(ctx context.Context, db *gorm.DB, investmentID, userID string, req *dto.CreateInvestmentTransactionRequest) (*dto.InvestmentTransactionResponse, error)
	ListTransactions(ctx context.Context, db *gorm.DB, investmentID, userID string) ([]dto.InvestmentTransactionResponse, error)

	PortfolioSummary(ctx context.Context, db *gorm.DB, userID string) (*dto.PortfolioSummaryResponse, error)
}

type InvestmentServiceImpl struct {
	investRepo repositories.InvestmentRepository
}

func NewInvestmentService(investRepo repositories.InvestmentRepository) InvestmentService {
	return &InvestmentServiceImpl{investRepo: investRepo}
}

// Create records the holding and its opening buy transaction together.
func (s *InvestmentServiceImpl) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateInvestmentRequest) (*dto.InvestmentResponse, error) {
	if _, err := s.investRepo.FindTypeByID(db, req.InvestmentTypeID); err != nil {
		return nil, apperrors.ErrInvestmentTypeNotFound
	}

	currentValue := req.InitialAmount
	if req.CurrentValue != nil {
		currentValue = *req.CurrentValue
	}

	investment := &models.Investment{
		UserID:           userID,
		InvestmentTypeID: req.InvestmentTypeID,
		Name:             req.Name,
		InvestmentDate:   req.InvestmentDate,
		InitialAmount:    req.InitialAmount,
		CurrentValue:     currentValue,
		MaturityDate:     req.MaturityDate,
		Broker:           req.Broker,
		FolioNumber:      req.FolioNumber,
		IsTaxSaving:      req.IsTaxSaving,
		TaxSection:       req.TaxSection,
		IsActive:         true,
		Notes:            req.Notes,
	}
	if req.Units != nil {
		investment.Units = decimal.NewNullDecimal(*req.Units)
	}
	if req.InterestRate != nil {
		investment.InterestRate = decimal.NewNullDecimal(*req.InterestRate)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.investRepo.Create(tx, investment); err != nil {
			return err
		}
		opening := &models.InvestmentTransaction{
			InvestmentID:    investment.ID,
			TransactionDate: req.InvestmentDate,
			TransactionType: models.InvestmentTxnBuy,
			Amount:          req.InitialAmount,
			Units:           investment.Units,
		}
		if investment.Units.Valid && investment.Units.Decimal.IsPositive() {
			opening.UnitPrice = decimal.NewNullDecimal(
				req.InitialAmount.Div(investment.Units.Decimal).Round(4),
			)
		}
		return s.investRepo.CreateTransaction(tx, opening)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(ctx, db, investment.ID, userID)
}

func (s *InvestmentServiceImpl) Get(ctx context.Context, db *gorm.DB, id, userID string) (*dto.InvestmentResponse, error) {
	investment, err := s.investRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvestmentNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildInvestmentResponse(investment), nil
}

func (s *InvestmentServiceImpl) List(ctx context.Context, db *gorm.DB, userID string, activeOnly bool) ([]dto.InvestmentResponse, error) {
	investments, err := s.investRepo.FindByUser(db, userID, activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.InvestmentResponse, 0, len(investments))
	for i := range investments {
		out = append(out, *buildInvestmentResponse(&investments[i]))
	}
	return out, nil
}

func (s *InvestmentServiceImpl) Update(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateInvestmentRequest) (*dto.InvestmentResponse, error) {
	investment, err := s.investRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvestmentNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		investment.Name = *req.Name
	}
	if req.CurrentValue != nil {
		investment.CurrentValue = *req.CurrentValue
	}
	if req.Units != nil {
		investment.Units = decimal.NewNullDecimal(*req.Units)
	}
	if req.MaturityDate != nil {
		investment.MaturityDate = req.MaturityDate
	}
	if req.InterestRate != nil {
		investment.InterestRate = decimal.NewNullDecimal(*req.InterestRate)
	}
	if req.Broker != nil {
		investment.Broker = *req.Broker
	}
	if req.FolioNumber != nil {
		investment.FolioNumber = *req.FolioNumber
	}
	if req.IsTaxSaving != nil {
		investment.IsTaxSaving = *req.IsTaxSaving
	}
	if req.TaxSection != nil {
		investment.TaxSection = *req.TaxSection
	}
	if req.IsActive != nil {
		investment.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		investment.Notes = *req.Notes
	}

	investment.InvestmentType = nil
	if err := s.investRepo.Update(db, investment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Get(ctx, db, id, userID)
}

func (s *InvestmentServiceImpl) Delete(ctx context.Context, db *gorm.DB, id, userID string) error {
	if err := s.investRepo.Delete(db, id, userID); err != nil {
		if apperrors.Is(err, repositories.ErrInvestmentNotFound) {
			return apperrors.ErrInvestmentNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *InvestmentServiceImpl) ListTypes(ctx context.Context, db *gorm.DB) ([]dto.InvestmentTypeResponse, error) {
	types, err := s.investRepo.FindTypes(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.InvestmentTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, *buildInvestmentTypeResponse(&types[i]))
	}
	return out, nil
}

// AddTransaction records a buy/sell/dividend/interest event and keeps the
// holding's current value and units in sync.
func (s *InvestmentServiceImpl) AddTransaction(ctx context.Context, db *gorm.DB, investmentID, userID string, req *dto.CreateInvestmentTransactionRequest) (*dto.InvestmentTransactionResponse, error) {
	investment, err := s.investRepo.FindByID(db, investmentID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvestmentNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	txn := &models.InvestmentTransaction{
		InvestmentID:    investment.ID,
		TransactionDate: req.TransactionDate,
		TransactionType: models.InvestmentTxnType(req.TransactionType),
		Amount:          req.Amount,
		Notes:           req.Notes,
	}
	if req.Units != nil {
		txn.Units = decimal.NewNullDecimal(*req.Units)
	}
	if req.UnitPrice != nil {
		txn.UnitPrice = decimal.NewNullDecimal(*req.UnitPrice)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.investRepo.CreateTransaction(tx, txn); err != nil {
			return err
		}

		switch txn.TransactionType {
		case models.InvestmentTxnBuy:
			investment.CurrentValue = investment.CurrentValue.Add(req.Amount)
			if req.Units != nil && investment.Units.Valid {
				investment.Units = decimal.NewNullDecimal(investment.Units.Decimal.Add(*req.Units))
			}
		case models.InvestmentTxnSell:
			investment.CurrentValue = decimal.Max(decimal.Zero, investment.CurrentValue.Sub(req.Amount))
			if req.Units != nil && investment.Units.Valid {
				investment.Units = decimal.NewNullDecimal(investment.Units.Decimal.Sub(*req.Units))
			}
		}
		// Dividend and interest payouts do not change the principal value.

		investment.InvestmentType = nil
		return s.investRepo.Update(tx, investment)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildInvestmentTransactionResponse(txn), nil
}

func (s *InvestmentServiceImpl) ListTransactions(ctx context.Context, db *gorm.DB, investmentID, userID string) ([]dto.InvestmentTransactionResponse, error) {
	if _, err := s.investRepo.FindByID(db, investmentID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrInvestmentNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	txns, err := s.investRepo.FindTransactions(db, investmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.InvestmentTransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, *buildInvestmentTransactionResponse(&txns[i]))
	}
	return out, nil
}

func (s *InvestmentServiceImpl) PortfolioSummary(ctx context.Context, db *gorm.DB, userID string) (*dto.PortfolioSummaryResponse, error) {
	investments, err := s.investRepo.FindByUser(db, userID, true)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summary := &dto.PortfolioSummaryResponse{
		TotalInvested:  decimal.Zero,
		CurrentValue:   decimal.Zero,
		TaxSavingTotal: decimal.Zero,
		Count:          len(investments),
		ByType:         []dto.PortfolioTypeBreakdown{},
	}

	byType := map[string]*dto.PortfolioTypeBreakdown{}
	for i := range investments {
		inv := &investments[i]
		summary.TotalInvested = summary.TotalInvested.Add(inv.InitialAmount)
		summary.CurrentValue = summary.CurrentValue.Add(inv.CurrentValue)
		if inv.IsTaxSaving {
			summary.TaxSavingTotal = summary.TaxSavingTotal.Add(inv.InitialAmount)
		}

		typeName := "other"
		if inv.InvestmentType != nil {
			typeName = inv.InvestmentType.Name
		}
		entry, ok := byType[typeName]
		if !ok {
			entry = &dto.PortfolioTypeBreakdown{
				TypeName:     typeName,
				Invested:     decimal.Zero,
				CurrentValue: decimal.Zero,
			}
			byType[typeName] = entry
		}
		entry.Invested = entry.Invested.Add(inv.InitialAmount)
		entry.CurrentValue = entry.CurrentValue.Add(inv.CurrentValue)
		entry.Count++
	}

	for _, entry := range byType {
		summary.ByType = append(summary.ByType, *entry)
	}

	summary.GainLoss = summary.CurrentValue.Sub(summary.TotalInvested)
	if summary.TotalInvested.IsPositive() {
		summary.GainLossPercent = summary.GainLoss.
			Div(summary.TotalInvested).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		summary.GainLossPercent = decimal.Zero
	}

	return summary, nil
}

func buildInvestmentResponse(investment *models.Investment) *dto.InvestmentResponse {
	resp := &dto.InvestmentResponse{
		ID:               investment.ID,
		Name:             investment.Name,
		InvestmentTypeID: investment.InvestmentTypeID,
		InvestmentDate:   investment.InvestmentDate,
		InitialAmount:    investment.InitialAmount,
		CurrentValue:     investment.CurrentValue,
		MaturityDate:     investment.MaturityDate,
		Broker:           investment.Broker,
		FolioNumber:      investment.FolioNumber,
		IsTaxSaving:      investment.IsTaxSaving,
		TaxSection:       investment.TaxSection,
		IsActive:         investment.IsActive,
		Notes:            investment.Notes,
		CreatedAt:        investment.CreatedAt,
	}
	if investment.Units.Valid {
		resp.Units = &investment.Units.Decimal
	}
	if investment.InterestRate.Valid {
		resp.InterestRate = &investment.InterestRate.Decimal
	}
	if investment.InvestmentType != nil {
		resp.InvestmentType = buildInvestmentTypeResponse(investment.InvestmentType)
	}

	resp.GainLoss = investment.CurrentValue.Sub(investment.InitialAmount)
	if investment.InitialAmount.IsPositive() {
		resp.GainLossPercent = resp.GainLoss.
			Div(investment.InitialAmount).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		resp.GainLossPercent = decimal.Zero
	}

	return resp
}

func buildInvestmentTypeResponse(t *models.InvestmentType) *dto.InvestmentTypeResponse {
	resp := &dto.InvestmentTypeResponse{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		RiskLevel:       t.RiskLevel,
		ExpectedReturns: t.ExpectedReturns,
		TaxImplication:  t.TaxImplication,
		IsTaxSaving:     t.IsTaxSaving,
		TaxSection:      t.TaxSection,
		LockInPeriod:    t.LockInPeriodMonth,
	}
	if t.MinInvestment.Valid {
		resp.MinInvestment = &t.MinInvestment.Decimal
	}
	return resp
}

func buildInvestmentTransactionResponse(txn *models.InvestmentTransaction) *dto.InvestmentTransactionResponse {
	resp := &dto.InvestmentTransactionResponse{
		ID:              txn.ID,
		InvestmentID:    txn.InvestmentID,
		TransactionType: string(txn.TransactionType),
		TransactionDate: txn.TransactionDate,
		Amount:          txn.Amount,
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
	}
	if txn.Units.Valid {
		resp.Units = &txn.Units.Decimal
	}
	if txn.UnitPrice.Valid {
		resp.UnitPrice = &txn.UnitPrice.Decimal
	}
	return resp
}
