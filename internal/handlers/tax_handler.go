package handlers

import (
	"net/http"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	*BaseHandler
	taxService services.TaxService
}

func NewTaxHandler(base *BaseHandler, taxService services.TaxService) *TaxHandler {
	return &TaxHandler{
		BaseHandler: base,
		taxService:  taxService,
	}
}

func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	tax := rg.Group("/tax")
	tax.Use(authMW)
	{
		tax.POST("/returns", h.CreateReturn)
		tax.GET("/returns", h.ListReturns)
		tax.GET("/returns/:id", h.GetReturn)
		tax.PUT("/returns/:id", h.UpdateReturn)
		tax.DELETE("/returns/:id", h.DeleteReturn)

		tax.POST("/returns/:id/deductions", h.AddDeduction)
		tax.GET("/returns/:id/deductions", h.ListDeductions)
		tax.DELETE("/returns/:id/deductions/:deduction_id", h.DeleteDeduction)

		tax.POST("/calculate", h.Calculate)
		tax.POST("/compare-regimes", h.CompareRegimes)
		tax.POST("/itr-form", h.DetermineITRForm)

		tax.GET("/saving-suggestions", h.SavingSuggestions)
		tax.GET("/summary", h.Summary)
	}
}

func (h *TaxHandler) CreateReturn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaxReturnRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	taxReturn, err := h.taxService.CreateReturn(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taxReturn)
}

func (h *TaxHandler) GetReturn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	taxReturn, err := h.taxService.GetReturn(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, taxReturn)
}

func (h *TaxHandler) ListReturns(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TaxReturnListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	returns, err := h.taxService.ListReturns(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, returns)
}

func (h *TaxHandler) UpdateReturn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaxReturnRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	taxReturn, err := h.taxService.UpdateReturn(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, taxReturn)
}

func (h *TaxHandler) DeleteReturn(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.taxService.DeleteReturn(c.Request.Context(), h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Tax return deleted"})
}

func (h *TaxHandler) AddDeduction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDeductionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	deduction, err := h.taxService.AddDeduction(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, deduction)
}

func (h *TaxHandler) ListDeductions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	deductions, err := h.taxService.ListDeductions(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, deductions)
}

func (h *TaxHandler) DeleteDeduction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.taxService.DeleteDeduction(
		c.Request.Context(), h.GetDB(c),
		c.Param("id"), c.Param("deduction_id"), userID,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Deduction deleted"})
}

func (h *TaxHandler) Calculate(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CalculateTaxRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.taxService.Calculate(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TaxHandler) CompareRegimes(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CompareRegimesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.taxService.CompareRegimes(c.Request.Context(), &req))
}

func (h *TaxHandler) SavingSuggestions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FiscalYearQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	suggestions, err := h.taxService.SavingSuggestions(c.Request.Context(), h.GetDB(c), userID, query.FiscalYear)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (h *TaxHandler) Summary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FiscalYearQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	summary, err := h.taxService.Summary(c.Request.Context(), h.GetDB(c), userID, query.FiscalYear)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *TaxHandler) DetermineITRForm(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.DetermineITRFormRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.taxService.DetermineITRForm(c.Request.Context(), &req))
}
