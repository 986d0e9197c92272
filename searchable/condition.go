package searchable

import (
	"strings"

	"github.com/ministore/searchable/searchable/storage"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// Conditions builds the leaf comparisons of every search mode for one dialect.
type Conditions struct {
	Dialect storage.Dialect
	Conn    storage.Connection
}

// Contains matches rows whose field contains term. Case-insensitive matching
// uses ILIKE where the dialect has it and LOWER() on both sides elsewhere.
func (c Conditions) Contains(field, term string, caseInsensitive bool) sqlbuilder.Expr {
	pattern := containsPattern(term)
	col := sqlbuilder.Column{Name: field}
	switch {
	case !caseInsensitive:
		return sqlbuilder.Comparison{Left: col, Op: "LIKE", Right: sqlbuilder.Param{Value: pattern}}
	case c.Dialect.NativeILike():
		return sqlbuilder.Comparison{Left: col, Op: "ILIKE", Right: sqlbuilder.Param{Value: pattern}}
	default:
		return sqlbuilder.Comparison{
			Left:  lower(col),
			Op:    "LIKE",
			Right: lower(sqlbuilder.Param{Value: strings.ToLower(pattern)}),
		}
	}
}

// Equals matches rows whose field equals term exactly.
func (c Conditions) Equals(field, term string) sqlbuilder.Expr {
	return sqlbuilder.Comparison{Left: sqlbuilder.Column{Name: field}, Op: "=", Right: sqlbuilder.Param{Value: term}}
}

// ContainsLiteral is the case-insensitive Contains with the pattern embedded
// as a quoted literal instead of a bound parameter.
func (c Conditions) ContainsLiteral(field, term string) sqlbuilder.Expr {
	pattern := containsPattern(term)
	col := sqlbuilder.Column{Name: field}
	if c.Dialect.NativeILike() {
		return sqlbuilder.Comparison{Left: col, Op: "ILIKE", Right: sqlbuilder.Literal(QuoteLiteral(c.Conn, pattern))}
	}
	return sqlbuilder.Comparison{
		Left:  lower(col),
		Op:    "LIKE",
		Right: lower(sqlbuilder.Literal(QuoteLiteral(c.Conn, strings.ToLower(pattern)))),
	}
}

// WithinDistance matches rows whose lower-cased field is at most maxDistance
// edits from the lower-cased term.
func (c Conditions) WithinDistance(field, term string, maxDistance int) sqlbuilder.Expr {
	return sqlbuilder.Comparison{
		Left: sqlbuilder.Func{Name: "levenshtein", Args: []sqlbuilder.Expr{
			lower(sqlbuilder.Column{Name: field}),
			lower(sqlbuilder.Param{Value: term}),
		}},
		Op:    "<=",
		Right: sqlbuilder.Param{Value: maxDistance},
	}
}

// SoundsLike matches rows whose field has the same phonetic code as term.
func (c Conditions) SoundsLike(field, term string) sqlbuilder.Expr {
	return sqlbuilder.Comparison{
		Left:  sqlbuilder.Func{Name: "SOUNDEX", Args: []sqlbuilder.Expr{sqlbuilder.Column{Name: field}}},
		Op:    "=",
		Right: sqlbuilder.Func{Name: "SOUNDEX", Args: []sqlbuilder.Expr{sqlbuilder.Param{Value: term}}},
	}
}

func lower(e sqlbuilder.Expr) sqlbuilder.Expr {
	return sqlbuilder.Func{Name: "LOWER", Args: []sqlbuilder.Expr{e}}
}
