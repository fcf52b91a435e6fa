package handlers

import (
	"net/http"

	"fintrack_backend/internal/dto"
	"fintrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	*BaseHandler
	docService services.DocumentService
}

func NewDocumentHandler(base *BaseHandler, docService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: base,
		docService:  docService,
	}
}

func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	docs := rg.Group("/documents")
	docs.Use(authMW)
	{
		docs.POST("", h.Upload)
		docs.GET("", h.List)
		docs.GET("/:id", h.Get)
		docs.GET("/:id/download", h.Download)
		docs.DELETE("/:id", h.Delete)
	}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
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

	upload := &services.DocumentUpload{
		DocumentType:      c.PostForm("document_type"),
		DocumentName:      fileHeader.Filename,
		ContentType:       fileHeader.Header.Get("Content-Type"),
		Size:              fileHeader.Size,
		FiscalYear:        c.PostForm("fiscal_year"),
		RelatedEntityType: c.PostForm("related_entity_type"),
		Notes:             c.PostForm("notes"),
	}
	if relatedID := c.PostForm("related_entity_id"); relatedID != "" {
		upload.RelatedEntityID = &relatedID
	}

	document, err := h.docService.Upload(c.Request.Context(), h.GetDB(c), userID, upload, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, document)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	document, err := h.docService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.DocumentListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	documents, err := h.docService.List(c.Request.Context(), h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, documents)
}

func (h *DocumentHandler) Download(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	reader, document, err := h.docService.Download(c.Request.Context(), h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+document.DocumentName+`"`)
	c.DataFromReader(http.StatusOK, document.FileSize, document.MimeType, reader, nil)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.docService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Document deleted"})
}
