package query

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenNSW/tonban/internal/tonban/model"
)

func TestTemplates_AreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, dir := range []model.Direction{model.DirectionExport, model.DirectionImport} {
		for _, filter := range []Filter{FilterCode, FilterKeyword} {
			sqlText := Template(dir, filter)
			require.NotEmpty(t, sqlText)
			assert.False(t, seen[sqlText])
			seen[sqlText] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestTemplate_JoinSkeleton(t *testing.T) {
	exportSQL := Template(model.DirectionExport, FilterCode)

	assert.Contains(t, exportSQL, "FROM   輸出統番 AS te")
	assert.Contains(t, exportSQL, "JOIN   号番 AS g ON g.号番 = substr(te.統番, 1, 7)")
	assert.Contains(t, exportSQL, "JOIN   項番 AS k ON k.項番 = g.項番")
	assert.Contains(t, exportSQL, "JOIN   類番 AS r ON r.類番 = k.類番")
	assert.Contains(t, exportSQL, "JOIN   部番 AS b ON b.部番 = r.部番")
	assert.Contains(t, exportSQL, "WHERE  te.統番 = @code")
	assert.NotContains(t, exportSQL, "ORDER BY")
	assert.NotContains(t, exportSQL, "関税率_")

	importSQL := Template(model.DirectionImport, FilterCode)
	assert.Contains(t, importSQL, "FROM   輸入統番 AS te")
	for _, col := range model.RateColumns {
		assert.Contains(t, importSQL, col.Expr())
	}
}

func TestTemplate_KeywordFilter(t *testing.T) {
	sqlText := Template(model.DirectionImport, FilterKeyword)

	for _, col := range model.SearchColumns {
		assert.Contains(t, sqlText, col.Expr()+` LIKE @kw ESCAPE '\'`)
	}
	assert.Equal(t, 5, strings.Count(sqlText, "LIKE @kw"))
	assert.Contains(t, sqlText, "ORDER BY te.統番\nLIMIT @limit")
}

func TestLookup(t *testing.T) {
	stmt, err := Lookup(model.DirectionExport, "0101.21-000")
	require.NoError(t, err)

	assert.Equal(t, FilterCode, stmt.Filter)
	assert.Equal(t, Template(model.DirectionExport, FilterCode), stmt.SQL)
	assert.Equal(t, []any{sql.Named("code", "0101.21-000")}, stmt.Args)
	assert.Equal(t, model.CommonColumns, stmt.Columns())

	_, err = Lookup(model.DirectionExport, "")
	assert.Error(t, err)

	_, err = Lookup(model.Direction("transit"), "0101.21-000")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	stmt, err := Search(model.DirectionImport, "牛", 3)
	require.NoError(t, err)

	assert.Equal(t, FilterKeyword, stmt.Filter)
	assert.Equal(t, []any{sql.Named("kw", "%牛%"), sql.Named("limit", 3)}, stmt.Args)
	assert.Len(t, stmt.Columns(), len(model.CommonColumns)+len(model.RateColumns))

	_, err = Search(model.DirectionImport, "牛肉", 0)
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"牛肉":     "牛肉",
		"100%":   `100\%`,
		"a_b":    `a\_b`,
		`c:\tmp`: `c:\\tmp`,
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeLike(in), in)
	}
}
