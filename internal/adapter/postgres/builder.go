package postgres

import (
	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

// Builder returns a squirrel statement builder using $n placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ApplyListQuery adds the date range, sort and page of q to sb.
// createdAt and the values of sortColumns are qualified column names.
// q must be normalized, so its sort field is a key of sortColumns.
func ApplyListQuery(sb squirrel.SelectBuilder, q domain.ListQuery, createdAt string, sortColumns map[string]string) squirrel.SelectBuilder {
	sb = ApplyDateRange(sb, q, createdAt)

	col, ok := sortColumns[q.SortField]
	if !ok {
		col = createdAt
	}
	dir := " DESC"
	if q.SortOrder == domain.SortAsc {
		dir = " ASC"
	}

	order := []string{col + dir}
	if col != createdAt {
		order = append(order, createdAt+dir)
	}

	return sb.
		OrderBy(order...).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))
}

// ApplyDateRange restricts createdAt to the inclusive range of q.
func ApplyDateRange(sb squirrel.SelectBuilder, q domain.ListQuery, createdAt string) squirrel.SelectBuilder {
	if q.StartDate != nil {
		sb = sb.Where(squirrel.GtOrEq{createdAt: *q.StartDate})
	}
	if q.EndDate != nil {
		sb = sb.Where(squirrel.LtOrEq{createdAt: *q.EndDate})
	}
	return sb
}
