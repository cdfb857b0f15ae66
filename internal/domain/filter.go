package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageLimit = 30
	MaxPageLimit     = 100
	DefaultSortField = "created_at"
)

// ListQuery holds pagination, sort and date-range parameters shared by all listings.
type ListQuery struct {
	Page      int
	Limit     int
	SortField string
	SortOrder SortOrder
	StartDate *time.Time
	EndDate   *time.Time
}

// Offset returns the number of rows to skip for the current page.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Normalize fills defaults and validates the query against the sortable fields
// of a listing. A zero page or limit takes the default value.
func (q ListQuery) Normalize(sortable []string) (ListQuery, error) {
	var errs []FieldError

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Page < 0 {
		errs = append(errs, FieldError{Field: "page", Message: "must be positive"})
	}

	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit < 0 {
		errs = append(errs, FieldError{Field: "limit", Message: "must be positive"})
	}
	if q.Limit > MaxPageLimit {
		errs = append(errs, FieldError{Field: "limit", Message: fmt.Sprintf("max %d", MaxPageLimit)})
	}

	if q.SortField == "" {
		q.SortField = DefaultSortField
	}
	if !slices.Contains(sortable, q.SortField) {
		errs = append(errs, FieldError{Field: "sort", Message: fmt.Sprintf("unsupported field %q", q.SortField)})
	}

	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	if !q.SortOrder.IsValid() {
		errs = append(errs, FieldError{Field: "sort", Message: "order must be asc or desc"})
	}

	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		errs = append(errs, FieldError{Field: "endDate", Message: "must not be before startDate"})
	}

	if len(errs) > 0 {
		return q, &ValidationError{Errors: errs}
	}
	return q, nil
}

// ParseSort parses the "field.order" sort notation, e.g. "created_at.desc".
// An empty string yields zero values so Normalize can apply defaults.
func ParseSort(raw string) (string, SortOrder, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", nil
	}
	field, order, ok := strings.Cut(raw, ".")
	if !ok || field == "" || !SortOrder(order).IsValid() {
		return "", "", NewValidationError("sort", "invalid sort format")
	}
	return field, SortOrder(order), nil
}

// CacheKey returns the deterministic cache key of the query under prefix:
//
//	prefix:page:limit:sortField:sortOrder:start:end
//
// Dates are encoded as unix nanoseconds and empty when unset, so
// "threads:1:30:created_at:desc::" is the key of the default first page.
// The query must be normalized first.
func (q ListQuery) CacheKey(prefix string) string {
	parts := []string{
		prefix,
		strconv.Itoa(q.Page),
		strconv.Itoa(q.Limit),
		q.SortField,
		q.SortOrder.String(),
		formatKeyTime(q.StartDate),
		formatKeyTime(q.EndDate),
	}
	return strings.Join(parts, ":")
}

func formatKeyTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

// Page is one page of a listing together with the total row count.
type Page[T any] struct {
	Items []T
	Total int
}
