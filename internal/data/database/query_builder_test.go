package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("subjects"))
	assert.Equal(t, `SELECT * FROM "subjects"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestBuildListQuery_ColumnsAndEquality(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("subjects",
		WithColumns("id", "code", "name"),
		WithCondition(WhereCond("department_id", Equal, "dept-1")),
		WithOrderBy("code", "ASC"),
		WithLimit(50),
		WithOffset(10),
	))

	assert.Equal(t,
		`SELECT "id", "code", "name" FROM "subjects" WHERE "department_id" = $1 ORDER BY "code" ASC LIMIT $2 OFFSET $3`,
		query)
	assert.Equal(t, []any{"dept-1", 50, 10}, args)
}

func TestBuildListQuery_MultipleConditionsNumberSequentially(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("subjects",
		WithCondition(WhereCond("department_id", Equal, "dept-1")),
		WithCondition(WhereCond("name", ILike, "%operating%")),
		WithLimit(25),
	))

	assert.Equal(t,
		`SELECT * FROM "subjects" WHERE "department_id" = $1 AND "name" ILIKE $2 LIMIT $3`,
		query)
	assert.Equal(t, []any{"dept-1", "%operating%", 25}, args)
}

func TestBuildListQuery_ZeroLimitAndOffsetAreExplicit(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("marks",
		WithLimit(0),
		WithOffset(0),
	))

	assert.Equal(t, `SELECT * FROM "marks" LIMIT $1 OFFSET $2`, query)
	assert.Equal(t, []any{0, 0}, args)
}

func TestBuildListQuery_NegativeLimitAndOffsetOmitted(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("marks",
		WithLimit(-5),
		WithOffset(-1),
	))

	assert.Equal(t, `SELECT * FROM "marks"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_InvalidOrderDirectionDropped(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions("subjects",
		WithOrderBy("code", "sideways; DROP TABLE subjects"),
	))

	assert.Equal(t, `SELECT * FROM "subjects" ORDER BY "code"`, query)
}

func TestBuildListQuery_LowercaseOrderDirectionNormalized(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions("subjects",
		WithOrderBy("created_at", "desc"),
	))

	assert.Equal(t, `SELECT * FROM "subjects" ORDER BY "created_at" DESC`, query)
}

func TestBuildListQuery_IdentifiersAreQuoted(t *testing.T) {
	// A hostile identifier ends up quoted as a (nonsense) name, never as SQL.
	query, args := BuildListQuery(NewListQueryOptions(`subjects"; DROP TABLE subjects; --`,
		WithCondition(WhereCond(`name" = 'x' OR "1"="1`, Equal, "v")),
	))

	require.Equal(t,
		`SELECT * FROM "subjects""; DROP TABLE subjects; --" WHERE "name"" = 'x' OR ""1""=""1" = $1`,
		query)
	assert.Equal(t, []any{"v"}, args)
}

func TestBuildListQuery_SkipsUnknownConditionTypes(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("subjects",
		WithCondition(Condition{Field: "code", Type: ConditionType(">"), Value: "CS"}),
		WithCondition(WhereCond("", Equal, "ignored")),
		WithCondition(WhereCond("department_id", Equal, "dept-1")),
	))

	assert.Equal(t, `SELECT * FROM "subjects" WHERE "department_id" = $1`, query)
	assert.Equal(t, []any{"dept-1"}, args)
}
