package domain

import "time"

// Sort directions accepted by list queries.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListQuery describes one page of the user directory: which slice to return,
// how to filter it, and how to order it. It is an ephemeral value object
// reconstructed per request; an empty Search matches everything.
type ListQuery struct {
	Page    int
	Limit   int
	Search  string
	OrderBy string
	Order   string
}

// Offset returns the number of records skipped before this page starts.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Validate checks the query against the endpoint contract: page and limit
// must be >= 1 and the order direction must be ASC or DESC. There is
// deliberately no upper bound on Limit.
func (q ListQuery) Validate() error {
	if q.Page < 1 {
		return NewAppError(CodeValidation, "page must be a positive integer", nil)
	}
	if q.Limit < 1 {
		return NewAppError(CodeValidation, "limit must be a positive integer", nil)
	}
	switch q.Order {
	case OrderAsc, OrderDesc:
	default:
		return NewAppError(CodeValidation, "order must be ASC or DESC", nil)
	}
	return nil
}

// PageResult holds one page of items along with pagination metadata.
// TotalPages is always ceil(Total / PageSize).
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}
