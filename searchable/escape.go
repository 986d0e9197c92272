package searchable

import (
	"strings"

	"github.com/ministore/searchable/searchable/storage"
)

// EscapePattern escapes the LIKE metacharacters %, _ and the escape
// character itself so term matches literally inside a pattern.
func EscapePattern(term string) string {
	if !strings.ContainsAny(term, `\%_`) {
		return term
	}
	var b strings.Builder
	b.Grow(len(term) + 8)
	for _, r := range term {
		switch r {
		case '%', '_', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// containsPattern wraps an escaped term for substring matching.
func containsPattern(term string) string {
	return "%" + EscapePattern(term) + "%"
}

// QuoteLiteral quotes s as a SQL string literal for raw embedding. The
// connection's own quoting is used when it has one; otherwise embedded
// single quotes are doubled.
func QuoteLiteral(conn storage.Connection, s string) string {
	if q, ok := conn.(storage.LiteralQuoter); ok {
		return q.QuoteLiteral(s)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
