package dto

// Pagination is the standard list envelope metadata.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// MessageResponse is the generic success body for operations that return
// no resource.
type MessageResponse struct {
	Message string `json:"message"`
}
