// Package query builds the four parameterized statements served by the API.
//
// Every statement is the same five-table join (entry → 号 → 項 → 類 → 部);
// statements only differ along two axes: the direction, which picks the
// entry table and projection, and the filter, which picks an exact code
// match or a keyword substring match.
package query

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// Filter selects the WHERE clause of a statement.
type Filter int

const (
	FilterCode Filter = iota
	FilterKeyword
)

func (f Filter) String() string {
	if f == FilterKeyword {
		return "keyword"
	}
	return "code"
}

// Named parameters bound by the statements.
const (
	ParamCode    = "code"
	ParamKeyword = "kw"
	ParamLimit   = "limit"
)

// likeEscape is the escape character declared in every LIKE clause.
const likeEscape = `\`

// Statement is a fully bound query together with the projection it returns.
type Statement struct {
	Direction model.Direction
	Filter    Filter
	SQL       string
	Args      []any
}

// Columns returns the columns each result row carries, in projection order.
func (s Statement) Columns() []model.Column {
	return s.Direction.Columns()
}

type templateKey struct {
	direction model.Direction
	filter    Filter
}

var templates = map[templateKey]string{}

func init() {
	for _, dir := range []model.Direction{model.DirectionExport, model.DirectionImport} {
		for _, filter := range []Filter{FilterCode, FilterKeyword} {
			templates[templateKey{dir, filter}] = build(dir, filter)
		}
	}
}

// Template returns the SQL text for a direction and filter.
func Template(dir model.Direction, filter Filter) string {
	return templates[templateKey{dir, filter}]
}

// Lookup builds the exact-code statement. code must already be trimmed and non-empty.
func Lookup(dir model.Direction, code string) (Statement, error) {
	if err := dir.Validate(); err != nil {
		return Statement{}, err
	}
	if code == "" {
		return Statement{}, fmt.Errorf("code cannot be empty")
	}
	return Statement{
		Direction: dir,
		Filter:    FilterCode,
		SQL:       Template(dir, FilterCode),
		Args:      []any{sql.Named(ParamCode, code)},
	}, nil
}

// Search builds the keyword statement. The keyword is matched as a literal
// substring; limit must already be clamped by the caller.
func Search(dir model.Direction, keyword string, limit int) (Statement, error) {
	if err := dir.Validate(); err != nil {
		return Statement{}, err
	}
	if keyword == "" {
		return Statement{}, fmt.Errorf("keyword cannot be empty")
	}
	if limit < 1 {
		return Statement{}, fmt.Errorf("limit must be positive, got %d", limit)
	}
	return Statement{
		Direction: dir,
		Filter:    FilterKeyword,
		SQL:       Template(dir, FilterKeyword),
		Args: []any{
			sql.Named(ParamKeyword, "%"+EscapeLike(keyword)+"%"),
			sql.Named(ParamLimit, limit),
		},
	}, nil
}

// EscapeLike escapes LIKE wildcards so s only matches itself.
func EscapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}

func build(dir model.Direction, filter Filter) string {
	var b strings.Builder

	b.WriteString("SELECT\n")
	cols := dir.Columns()
	for i, col := range cols {
		b.WriteString("    ")
		b.WriteString(col.Expr())
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "FROM   %s AS %s\n", dir.Table(), model.AliasEntry)
	fmt.Fprintf(&b, "JOIN   号番 AS %s ON %s.号番 = substr(%s.統番, 1, %d)\n",
		model.AliasSubheading, model.AliasSubheading, model.AliasEntry, model.SubheadingCodeLength)
	fmt.Fprintf(&b, "JOIN   項番 AS %s ON %s.項番 = %s.項番\n", model.AliasHeading, model.AliasHeading, model.AliasSubheading)
	fmt.Fprintf(&b, "JOIN   類番 AS %s ON %s.類番 = %s.類番\n", model.AliasChapter, model.AliasChapter, model.AliasHeading)
	fmt.Fprintf(&b, "JOIN   部番 AS %s ON %s.部番 = %s.部番\n", model.AliasPart, model.AliasPart, model.AliasChapter)

	switch filter {
	case FilterKeyword:
		for i, col := range model.SearchColumns {
			if i == 0 {
				b.WriteString("WHERE  ")
			} else {
				b.WriteString("   OR  ")
			}
			fmt.Fprintf(&b, "%s LIKE @%s ESCAPE '%s'\n", col.Expr(), ParamKeyword, likeEscape)
		}
		fmt.Fprintf(&b, "ORDER BY %s.%s\n", model.AliasEntry, model.ColTonban)
		fmt.Fprintf(&b, "LIMIT @%s", ParamLimit)
	default:
		fmt.Fprintf(&b, "WHERE  %s.%s = @%s", model.AliasEntry, model.ColTonban, ParamCode)
	}

	return b.String()
}
