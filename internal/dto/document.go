package dto

import "time"

type DocumentListQuery struct {
	DocumentType string `form:"document_type"`
	FiscalYear   string `form:"fiscal_year" validate:"omitempty,fiscal_year"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type DocumentResponse struct {
	ID                string    `json:"id"`
	DocumentType      string    `json:"document_type"`
	DocumentName      string    `json:"document_name"`
	FileURL           string    `json:"file_url"`
	FileSize          int64     `json:"file_size"`
	MimeType          string    `json:"mime_type,omitempty"`
	FiscalYear        string    `json:"fiscal_year,omitempty"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
