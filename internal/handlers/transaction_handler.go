package handlers

import (
	"net/http"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	*BaseHandler
	txnService services.TransactionService
}

func NewTransactionHandler(base *BaseHandler, txnService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler: base,
		txnService:  txnService,
	}
}

func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	txns := rg.Group("/transactions")
	txns.Use(authMW)
	{
		txns.POST("", h.Create)
		txns.GET("", h.List)
		txns.GET("/summary", h.SpendingByCategory)
		txns.GET("/:id", h.Get)
		txns.PUT("/:id", h.Update)
		txns.DELETE("/:id", h.Delete)
		txns.POST("/:id/receipt", h.AttachReceipt)
	}

	categories := rg.Group("/categories")
	categories.Use(authMW)
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
	}

	accounts := rg.Group("/bank-accounts")
	accounts.Use(authMW)
	{
		accounts.POST("", h.CreateBankAccount)
		accounts.GET("", h.ListBankAccounts)
		accounts.PUT("/:id", h.UpdateBankAccount)
		accounts.DELETE("/:id", h.DeleteBankAccount)
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	txn, err := h.txnService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	txn, err := h.txnService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.TransactionListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	list, err := h.txnService.List(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	txn, err := h.txnService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted"})
}

func (h *TransactionHandler) AttachReceipt(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	txn, err := h.txnService.AttachReceipt(
		c.Request.Context(), h.GetDB(c), c.Param("id"), userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) SpendingByCategory(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	from, to, err := ParseQueryDateRange(c, 30)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	summary, err := h.txnService.SpendingByCategory(c.Request.Context(), h.GetDB(c), userID, from, to)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *TransactionHandler) CreateCategory(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.txnService.CreateCategory(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *TransactionHandler) ListCategories(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	categories, err := h.txnService.ListCategories(c.Request.Context(), h.GetDB(c), c.Query("category_type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *TransactionHandler) CreateBankAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.txnService.CreateBankAccount(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *TransactionHandler) ListBankAccounts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	accounts, err := h.txnService.ListBankAccounts(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

func (h *TransactionHandler) UpdateBankAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBankAccountRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.txnService.UpdateBankAccount(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *TransactionHandler) DeleteBankAccount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.txnService.DeleteBankAccount(c.Request.Context(), h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bank account deleted"})
}
