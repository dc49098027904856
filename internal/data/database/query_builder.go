// Package database builds parameterized list queries for the repositories.
// Identifiers are sanitized with pgx; values always travel as placeholders.
package database

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ConditionType enumerates the WHERE operators the repositories use.
type ConditionType string

const (
	// Equal matches a column exactly.
	Equal ConditionType = "="
	// ILike matches a column case-insensitively against a pattern.
	ILike ConditionType = "ILIKE"
)

// unset marks limit/offset as not provided; 0 is a valid explicit value.
const unset = -1

// Condition is one WHERE predicate. Conditions are combined with AND.
type Condition struct {
	Field string
	Type  ConditionType
	Value any
}

// WhereCond builds a condition on field.
func WhereCond(field string, condType ConditionType, value any) Condition {
	return Condition{Field: field, Type: condType, Value: value}
}

// ListQueryOptions describes a list query over a single table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	Limit      int
	Offset     int
}

// ListQueryOption mutates ListQueryOptions.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions builds options for table with the given modifiers.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	options := &ListQueryOptions{
		Table:  table,
		Limit:  unset,
		Offset: unset,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithColumns sets the columns to select. Without it the query selects *.
func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Columns = cols
	}
}

// WithCondition appends a condition.
func WithCondition(cond Condition) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.Conditions = append(o.Conditions, cond)
	}
}

// WithOrderBy sets the ordering column and direction. Directions other than
// ASC/DESC are dropped rather than interpolated.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) {
		o.OrderBy = column
		o.OrderDir = direction
	}
}

// WithLimit sets the limit. Accepts 0.
func WithLimit(limit int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if limit >= 0 {
			o.Limit = limit
		}
	}
}

// WithOffset sets the offset. Accepts 0.
func WithOffset(offset int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if offset >= 0 {
			o.Offset = offset
		}
	}
}

// sanitizeIdentifier quotes an identifier so it cannot carry SQL.
func sanitizeIdentifier(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// BuildListQuery constructs the SQL string and ordered arguments from options.
//
// Example:
//
//	options := NewListQueryOptions("subjects",
//		WithColumns("id", "code", "name"),
//		WithCondition(WhereCond("department_id", Equal, deptID)),
//		WithOrderBy("code", "ASC"),
//		WithLimit(50),
//		WithOffset(0),
//	)
//	query, args := BuildListQuery(options)
func BuildListQuery(options *ListQueryOptions) (string, []any) {
	if options == nil {
		return "", nil
	}

	var query strings.Builder
	args := []any{}

	query.WriteString("SELECT ")
	if len(options.Columns) == 0 {
		query.WriteString("*")
	} else {
		cols := make([]string, len(options.Columns))
		for i, col := range options.Columns {
			cols[i] = sanitizeIdentifier(col)
		}
		query.WriteString(strings.Join(cols, ", "))
	}
	query.WriteString(" FROM ")
	query.WriteString(sanitizeIdentifier(options.Table))

	predicates := make([]string, 0, len(options.Conditions))
	for _, cond := range options.Conditions {
		if cond.Field == "" || (cond.Type != Equal && cond.Type != ILike) {
			continue
		}
		predicates = append(predicates,
			fmt.Sprintf("%s %s $%d", sanitizeIdentifier(cond.Field), cond.Type, len(args)+1))
		args = append(args, cond.Value)
	}
	if len(predicates) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(predicates, " AND "))
	}

	if options.OrderBy != "" {
		query.WriteString(" ORDER BY ")
		query.WriteString(sanitizeIdentifier(options.OrderBy))
		if dir := strings.ToUpper(options.OrderDir); dir == "ASC" || dir == "DESC" {
			query.WriteString(" ")
			query.WriteString(dir)
		}
	}

	if options.Limit != unset {
		query.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)+1))
		args = append(args, options.Limit)
	}
	if options.Offset != unset {
		query.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)+1))
		args = append(args, options.Offset)
	}

	return query.String(), args
}
