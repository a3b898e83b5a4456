package pkg

import (
	"math"
	"regexp"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/userdir/internal/domain"
)

// DefaultSortField is used when a query names a sort field outside the
// allowed list. Unknown fields fall back rather than error: the endpoint
// contract only rejects bad sort directions, and passing an arbitrary
// identifier into ORDER BY would surface as a database error instead.
const DefaultSortField = "name"

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Paginate returns a GORM scope that applies LIMIT and OFFSET for the query.
// A page past the end of the result set yields an empty page, not an error.
func Paginate(q domain.ListQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(q.Offset()).Limit(q.Limit)
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the query.
// Field names are validated against a strict pattern and the allowed list to
// prevent SQL injection; anything else sorts by DefaultSortField.
func Sort(q domain.ListQuery, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(q.OrderBy)
		if !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
			field = DefaultSortField
		}

		direction := "asc"
		if strings.EqualFold(q.Order, domain.OrderDesc) {
			direction = "desc"
		}

		return db.Order(field + " " + direction)
	}
}

// Search returns a GORM scope that applies a case-insensitive substring match
// of the query's search term against each of the given fields, OR-combined.
// An empty term leaves the query unfiltered.
func Search(q domain.ListQuery, fields []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(q.Search)
		if term == "" || len(fields) == 0 {
			return db
		}

		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, 0, len(fields))
		args := make([]any, 0, len(fields))
		for _, f := range fields {
			if !validFieldName.MatchString(f) {
				continue
			}
			conds = append(conds, "LOWER("+f+") LIKE ?")
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}

		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// NewPageResult creates a PageResult with computed TotalPages.
func NewPageResult[T any](items []T, total int64, q domain.ListQuery) *domain.PageResult[T] {
	totalPages := 0
	if q.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.Limit,
		TotalPages: totalPages,
	}
}
