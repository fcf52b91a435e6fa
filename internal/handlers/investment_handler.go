package handlers

import (
	"net/http"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	*BaseHandler
	investService services.InvestmentService
}

func NewInvestmentHandler(base *BaseHandler, investService services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		BaseHandler:   base,
		investService: investService,
	}
}

func (h *InvestmentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	investments := rg.Group("/investments")
	investments.Use(authMW)
	{
		investments.POST("", h.Create)
		investments.GET("", h.List)
		investments.GET("/types", h.ListTypes)
		investments.GET("/summary", h.PortfolioSummary)
		investments.GET("/:id", h.Get)
		investments.PUT("/:id", h.Update)
		investments.DELETE("/:id", h.Delete)
		investments.POST("/:id/transactions", h.AddTransaction)
		investments.GET("/:id/transactions", h.ListTransactions)
	}
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvestmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	investment, err := h.investService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	investment, err := h.investService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	investments, err := h.investService.List(c.Request.Context(), h.GetDB(c), userID, activeOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, investments)
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInvestmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	investment, err := h.investService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.investService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Investment deleted"})
}

func (h *InvestmentHandler) ListTypes(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	types, err := h.investService.ListTypes(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *InvestmentHandler) AddTransaction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvestmentTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	txn, err := h.investService.AddTransaction(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *InvestmentHandler) ListTransactions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	txns, err := h.investService.ListTransactions(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

func (h *InvestmentHandler) PortfolioSummary(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	summary, err := h.investService.PortfolioSummary(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
