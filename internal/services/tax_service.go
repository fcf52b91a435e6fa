package services

import (
	"context"
	"fmt"
	"time"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/logger"
	"fintrack_backend/internal/models"
	"fintrack_backend/internal/repositories"
	"fintrack_backend/internal/taxcalc"
	"fintrack_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaxService interface {
	CreateReturn(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTaxReturnRequest) (*dto.TaxReturnResponse, error)
	GetReturn(ctx context.Context, db *gorm.DB, id, userID string) (*dto.TaxReturnResponse, error)
	ListReturns(ctx context.Context, db *gorm.DB, userID string, query *dto.TaxReturnListQuery) ([]dto.TaxReturnResponse, error)
	UpdateReturn(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateTaxReturnRequest) (*dto.TaxReturnResponse, error)
	DeleteReturn(ctx context.Context, db *gorm.DB, id, userID string) error

	AddDeduction(ctx context.Context, db *gorm.DB, taxReturnID, userID string, req *dto.CreateDeductionRequest) (*dto.TaxDeductionResponse, error)
	ListDeductions(ctx context.Context, db *gorm.DB, taxReturnID, userID string) ([]dto.TaxDeductionResponse, error)
	DeleteDeduction(ctx context.Context, db *gorm.DB, taxReturnID, deductionID, userID string) error

	Calculate(ctx context.Context, req *dto.CalculateTaxRequest) (*taxcalc.Result, error)
	CompareRegimes(ctx context.Context, req *dto.CompareRegimesRequest) *taxcalc.RegimeComparison
	DetermineITRForm(ctx context.Context, req *dto.DetermineITRFormRequest) *dto.DetermineITRFormResponse

	SavingSuggestions(ctx context.Context, db *gorm.DB, userID, fiscalYear string) ([]taxcalc.Suggestion, error)
	Summary(ctx context.Context, db *gorm.DB, userID, fiscalYear string) (*dto.TaxSummaryResponse, error)
}

type TaxServiceImpl struct {
	taxRepo    repositories.TaxRepository
	docRepo    repositories.DocumentRepository
	txnRepo    repositories.TransactionRepository
	investRepo repositories.InvestmentRepository
}

func NewTaxService(
	taxRepo repositories.TaxRepository,
	docRepo repositories.DocumentRepository,
	txnRepo repositories.TransactionRepository,
	investRepo repositories.InvestmentRepository,
) TaxService {
	return &TaxServiceImpl{taxRepo: taxRepo, docRepo: docRepo, txnRepo: txnRepo, investRepo: investRepo}
}

func (s *TaxServiceImpl) CreateReturn(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateTaxReturnRequest) (*dto.TaxReturnResponse, error) {
	// One return per fiscal year per user.
	existing, err := s.taxRepo.FindWithFilter(db, userID, repositories.TaxReturnFilter{FiscalYear: req.FiscalYear})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(existing) > 0 {
		return nil, apperrors.ErrAlreadyExists(fmt.Errorf("tax return for %s already exists", req.FiscalYear)).
			WithDetails(map[string]string{"fiscal_year": "a tax return for this fiscal year already exists"})
	}

	formType := req.ITRFormType
	if formType == "" {
		formType = models.ITRForm1
	}

	taxReturn := &models.TaxReturn{
		UserID:       userID,
		FiscalYear:   req.FiscalYear,
		ITRFormType:  formType,
		FilingStatus: models.FilingStatusDraft,
	}
	if req.GrossTotalIncome != nil {
		taxReturn.GrossTotalIncome = decimal.NewNullDecimal(*req.GrossTotalIncome)
	}
	if req.TDSAmount != nil {
		taxReturn.TDSAmount = decimal.NewNullDecimal(*req.TDSAmount)
	}

	if err := s.taxRepo.Create(db, taxReturn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "tax return created", "tax_return_id", taxReturn.ID, "fiscal_year", req.FiscalYear)
	return buildTaxReturnResponse(taxReturn), nil
}

func (s *TaxServiceImpl) GetReturn(ctx context.Context, db *gorm.DB, id, userID string) (*dto.TaxReturnResponse, error) {
	taxReturn, err := s.taxRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return nil, apperrors.ErrTaxReturnNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildTaxReturnResponse(taxReturn), nil
}

func (s *TaxServiceImpl) ListReturns(ctx context.Context, db *gorm.DB, userID string, query *dto.TaxReturnListQuery) ([]dto.TaxReturnResponse, error) {
	filter := repositories.TaxReturnFilter{
		FiscalYear:   query.FiscalYear,
		FilingStatus: models.FilingStatus(query.FilingStatus),
		Page:         query.Page,
		PageSize:     query.PageSize,
	}

	returns, err := s.taxRepo.FindWithFilter(db, userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.TaxReturnResponse, 0, len(returns))
	for i := range returns {
		out = append(out, *buildTaxReturnResponse(&returns[i]))
	}
	return out, nil
}

func (s *TaxServiceImpl) UpdateReturn(ctx context.Context, db *gorm.DB, id, userID string, req *dto.UpdateTaxReturnRequest) (*dto.TaxReturnResponse, error) {
	taxReturn, err := s.taxRepo.FindByID(db, id, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return nil, apperrors.ErrTaxReturnNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.ITRFormType != nil {
		taxReturn.ITRFormType = *req.ITRFormType
	}
	if req.FilingStatus != nil {
		taxReturn.FilingStatus = models.FilingStatus(*req.FilingStatus)
	}
	if req.GrossTotalIncome != nil {
		taxReturn.GrossTotalIncome = decimal.NewNullDecimal(*req.GrossTotalIncome)
	}
	if req.TaxableIncome != nil {
		taxReturn.TaxableIncome = decimal.NewNullDecimal(*req.TaxableIncome)
	}
	if req.TaxPayable != nil {
		taxReturn.TaxPayable = decimal.NewNullDecimal(*req.TaxPayable)
	}
	if req.TDSAmount != nil {
		taxReturn.TDSAmount = decimal.NewNullDecimal(*req.TDSAmount)
	}
	if req.TaxPaid != nil {
		taxReturn.TaxPaid = decimal.NewNullDecimal(*req.TaxPaid)
	}
	if req.RefundAmount != nil {
		taxReturn.RefundAmount = decimal.NewNullDecimal(*req.RefundAmount)
	}
	if req.RefundStatus != nil {
		taxReturn.RefundStatus = *req.RefundStatus
	}
	if req.FilingDate != nil {
		taxReturn.FilingDate = req.FilingDate
	}
	if req.AcknowledgmentNumber != nil {
		taxReturn.AcknowledgmentNumber = *req.AcknowledgmentNumber
	}
	if req.VerificationMethod != nil {
		taxReturn.VerificationMethod = *req.VerificationMethod
	}
	if req.VerificationDate != nil {
		taxReturn.VerificationDate = req.VerificationDate
	}

	// Filing implies a filing date.
	if taxReturn.FilingStatus == models.FilingStatusFiled && taxReturn.FilingDate == nil {
		now := time.Now()
		taxReturn.FilingDate = &now
	}

	taxReturn.Deductions = nil
	if err := s.taxRepo.Update(db, taxReturn); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetReturn(ctx, db, id, userID)
}

func (s *TaxServiceImpl) DeleteReturn(ctx context.Context, db *gorm.DB, id, userID string) error {
	if err := s.taxRepo.Delete(db, id, userID); err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return apperrors.ErrTaxReturnNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// AddDeduction records the deduction and rolls the return's total_deductions
// forward in the same transaction.
func (s *TaxServiceImpl) AddDeduction(ctx context.Context, db *gorm.DB, taxReturnID, userID string, req *dto.CreateDeductionRequest) (*dto.TaxDeductionResponse, error) {
	taxReturn, err := s.taxRepo.FindByID(db, taxReturnID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return nil, apperrors.ErrTaxReturnNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.ProofDocumentID != nil {
		if _, err := s.docRepo.FindByID(db, *req.ProofDocumentID, userID); err != nil {
			return nil, apperrors.ErrDocumentNotFound
		}
	}

	deduction := &models.TaxDeduction{
		TaxReturnID:     taxReturn.ID,
		Section:         req.Section,
		Description:     req.Description,
		Amount:          req.Amount,
		ProofDocumentID: req.ProofDocumentID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.taxRepo.CreateDeduction(tx, deduction); err != nil {
			return err
		}
		return s.recalculateDeductionTotal(tx, taxReturn)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildDeductionResponse(deduction), nil
}

func (s *TaxServiceImpl) ListDeductions(ctx context.Context, db *gorm.DB, taxReturnID, userID string) ([]dto.TaxDeductionResponse, error) {
	if _, err := s.taxRepo.FindByID(db, taxReturnID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return nil, apperrors.ErrTaxReturnNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	deductions, err := s.taxRepo.FindDeductions(db, taxReturnID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.TaxDeductionResponse, 0, len(deductions))
	for i := range deductions {
		out = append(out, *buildDeductionResponse(&deductions[i]))
	}
	return out, nil
}

func (s *TaxServiceImpl) DeleteDeduction(ctx context.Context, db *gorm.DB, taxReturnID, deductionID, userID string) error {
	taxReturn, err := s.taxRepo.FindByID(db, taxReturnID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaxReturnNotFound) {
			return apperrors.ErrTaxReturnNotFound
		}
		return apperrors.InternalError(err)
	}

	deduction, err := s.taxRepo.FindDeductionByID(db, deductionID)
	if err != nil || deduction.TaxReturnID != taxReturn.ID {
		return apperrors.ErrDeductionNotFound
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.taxRepo.DeleteDeduction(tx, deductionID); err != nil {
			return err
		}
		return s.recalculateDeductionTotal(tx, taxReturn)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *TaxServiceImpl) Calculate(ctx context.Context, req *dto.CalculateTaxRequest) (*taxcalc.Result, error) {
	calc := taxcalc.New(req.FiscalYear)
	result := calc.Calculate(taxcalc.Input{
		GrossIncome: req.GrossIncome,
		Age:         req.Age,
		Regime:      taxcalc.Regime(req.Regime),
		Deductions:  req.Deductions,
	})
	return &result, nil
}

func (s *TaxServiceImpl) CompareRegimes(ctx context.Context, req *dto.CompareRegimesRequest) *taxcalc.RegimeComparison {
	calc := taxcalc.New(req.FiscalYear)
	comparison := calc.CompareRegimes(req.GrossIncome, req.Age, req.Deductions)
	return &comparison
}

// SavingSuggestions reports unused deduction headroom for the fiscal year,
// combining claimed return deductions with tax-deductible transactions and
// tax-saving investments recorded during the year.
func (s *TaxServiceImpl) SavingSuggestions(ctx context.Context, db *gorm.DB, userID, fiscalYear string) ([]taxcalc.Suggestion, error) {
	if fiscalYear == "" {
		fiscalYear = taxcalc.CurrentFiscalYear()
	}

	deductions, err := s.collectSectionDeductions(db, userID, fiscalYear)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return taxcalc.SavingSuggestions(deductions), nil
}

// Summary aggregates the fiscal year's credit income, deductible spending,
// tax-saving investments and the return on file.
func (s *TaxServiceImpl) Summary(ctx context.Context, db *gorm.DB, userID, fiscalYear string) (*dto.TaxSummaryResponse, error) {
	if fiscalYear == "" {
		fiscalYear = taxcalc.CurrentFiscalYear()
	}
	from, to, err := taxcalc.FiscalYearBounds(fiscalYear)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid fiscal year")
	}

	totalIncome, err := s.txnRepo.SumAmountByType(db, userID, models.TransactionTypeCredit, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	deductibleTxns, err := s.txnRepo.FindTaxDeductibleInRange(db, userID, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	taxSavingInvestments, err := s.investRepo.FindTaxSavingInRange(db, userID, from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalDeductions := decimal.Zero
	bySection := map[string]decimal.Decimal{}
	for _, txn := range deductibleTxns {
		totalDeductions = totalDeductions.Add(txn.Amount)
		if txn.TaxSection != "" {
			bySection[txn.TaxSection] = bySection[txn.TaxSection].Add(txn.Amount)
		}
	}
	for _, inv := range taxSavingInvestments {
		totalDeductions = totalDeductions.Add(inv.InitialAmount)
		if inv.TaxSection != "" {
			bySection[inv.TaxSection] = bySection[inv.TaxSection].Add(inv.InitialAmount)
		}
	}

	summary := &dto.TaxSummaryResponse{
		FiscalYear:          fiscalYear,
		TotalIncome:         totalIncome,
		TotalDeductions:     totalDeductions,
		DeductionsBySection: bySection,
		TaxReturnStatus:     "not_filed",
	}

	returns, err := s.taxRepo.FindWithFilter(db, userID, repositories.TaxReturnFilter{FiscalYear: fiscalYear})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(returns) > 0 {
		taxReturn := &returns[0]
		id := taxReturn.ID
		summary.TaxReturnID = &id
		summary.TaxReturnStatus = string(taxReturn.FilingStatus)
		summary.RefundStatus = taxReturn.RefundStatus

		setIfValid := func(dst **decimal.Decimal, src decimal.NullDecimal) {
			if src.Valid {
				d := src.Decimal
				*dst = &d
			}
		}
		setIfValid(&summary.TaxableIncome, taxReturn.TaxableIncome)
		setIfValid(&summary.TaxPayable, taxReturn.TaxPayable)
		setIfValid(&summary.TaxPaid, taxReturn.TaxPaid)
		setIfValid(&summary.TDSAmount, taxReturn.TDSAmount)
		setIfValid(&summary.RefundAmount, taxReturn.RefundAmount)
	}

	return summary, nil
}

// collectSectionDeductions merges the three sources of section-tagged
// deductions for a fiscal year into one section total map.
func (s *TaxServiceImpl) collectSectionDeductions(db *gorm.DB, userID, fiscalYear string) (map[string]decimal.Decimal, error) {
	from, to, err := taxcalc.FiscalYearBounds(fiscalYear)
	if err != nil {
		return nil, err
	}

	deductions := map[string]decimal.Decimal{}

	returns, err := s.taxRepo.FindWithFilter(db, userID, repositories.TaxReturnFilter{FiscalYear: fiscalYear})
	if err != nil {
		return nil, err
	}
	if len(returns) > 0 {
		rows, err := s.taxRepo.FindDeductions(db, returns[0].ID)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			deductions[row.Section] = deductions[row.Section].Add(row.Amount)
		}
	}

	txns, err := s.txnRepo.FindTaxDeductibleInRange(db, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		if txn.TaxSection != "" {
			deductions[txn.TaxSection] = deductions[txn.TaxSection].Add(txn.Amount)
		}
	}

	investments, err := s.investRepo.FindTaxSavingInRange(db, userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, inv := range investments {
		if inv.TaxSection != "" {
			deductions[inv.TaxSection] = deductions[inv.TaxSection].Add(inv.InitialAmount)
		}
	}

	return deductions, nil
}

func (s *TaxServiceImpl) DetermineITRForm(ctx context.Context, req *dto.DetermineITRFormRequest) *dto.DetermineITRFormResponse {
	form := taxcalc.DetermineITRForm(
		req.IncomeSources,
		req.HasCapitalGains,
		req.HasForeignIncome,
		req.HasBusinessIncome,
	)
	return &dto.DetermineITRFormResponse{ITRForm: form}
}

func (s *TaxServiceImpl) recalculateDeductionTotal(tx *gorm.DB, taxReturn *models.TaxReturn) error {
	deductions, err := s.taxRepo.FindDeductions(tx, taxReturn.ID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, d := range deductions {
		total = total.Add(d.Amount)
	}

	taxReturn.TotalDeductions = decimal.NewNullDecimal(total)
	taxReturn.Deductions = nil
	return s.taxRepo.Update(tx, taxReturn)
}

func buildTaxReturnResponse(taxReturn *models.TaxReturn) *dto.TaxReturnResponse {
	resp := &dto.TaxReturnResponse{
		ID:                   taxReturn.ID,
		FiscalYear:           taxReturn.FiscalYear,
		ITRFormType:          taxReturn.ITRFormType,
		FilingStatus:         string(taxReturn.FilingStatus),
		RefundStatus:         taxReturn.RefundStatus,
		FilingDate:           taxReturn.FilingDate,
		AcknowledgmentNumber: taxReturn.AcknowledgmentNumber,
		VerificationMethod:   taxReturn.VerificationMethod,
		VerificationDate:     taxReturn.VerificationDate,
		CreatedAt:            taxReturn.CreatedAt,
	}

	setIfValid := func(dst **decimal.Decimal, src decimal.NullDecimal) {
		if src.Valid {
			d := src.Decimal
			*dst = &d
		}
	}
	setIfValid(&resp.GrossTotalIncome, taxReturn.GrossTotalIncome)
	setIfValid(&resp.TotalDeductions, taxReturn.TotalDeductions)
	setIfValid(&resp.TaxableIncome, taxReturn.TaxableIncome)
	setIfValid(&resp.TaxPayable, taxReturn.TaxPayable)
	setIfValid(&resp.TDSAmount, taxReturn.TDSAmount)
	setIfValid(&resp.TaxPaid, taxReturn.TaxPaid)
	setIfValid(&resp.RefundAmount, taxReturn.RefundAmount)

	for i := range taxReturn.Deductions {
		resp.Deductions = append(resp.Deductions, *buildDeductionResponse(&taxReturn.Deductions[i]))
	}
	return resp
}

func buildDeductionResponse(deduction *models.TaxDeduction) *dto.TaxDeductionResponse {
	return &dto.TaxDeductionResponse{
		ID:              deduction.ID,
		TaxReturnID:     deduction.TaxReturnID,
		Section:         deduction.Section,
		Description:     deduction.Description,
		Amount:          deduction.Amount,
		ProofDocumentID: deduction.ProofDocumentID,
		CreatedAt:       deduction.CreatedAt,
	}
}
