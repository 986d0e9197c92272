package searchable

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// RankedSearch scores each row by summing the weights of the fields that
// contain term (case-insensitively). Rows matching no field are excluded by
// the match predicate; relevance only orders the rest.
func (s *Searcher) RankedSearch(ctx context.Context, term string, weights Weights) (*Ranked, error) {
	if len(weights) == 0 {
		return nil, MissingWeightsError()
	}
	for _, w := range weights {
		if w.Field == "" {
			return nil, MissingFieldsError()
		}
		if !(w.Value > 0) || math.IsInf(w.Value, 0) {
			return nil, InvalidWeightError(w.Field, w.Value)
		}
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}

	match := make(sqlbuilder.Or, 0, len(weights))
	cols := make([]RelevanceColumn, 0, len(weights))
	total := make(sqlbuilder.Sum, 0, len(weights))
	aliases := make(map[string]bool, len(weights))
	for _, w := range weights {
		match = append(match, c.Contains(w.Field, term, true))
		expr := sqlbuilder.CaseWhen{
			When: c.ContainsLiteral(w.Field, term),
			Then: sqlbuilder.Number{Value: w.Value},
			Else: sqlbuilder.Number{Value: 0},
		}
		alias := uniqueAlias(RelevanceColumnAlias(w.Field), aliases)
		cols = append(cols, RelevanceColumn{Field: w.Field, Alias: alias, Expr: expr})
		total = append(total, expr)
	}

	return &Ranked{
		Match: match,
		Relevance: Relevance{
			Columns:    cols,
			Total:      total,
			TotalAlias: RelevanceAlias,
		},
	}, nil
}

// RelevanceColumnAlias names the per-field relevance column of field.
// Characters outside [A-Za-z0-9_] become underscores.
func RelevanceColumnAlias(field string) string {
	var b strings.Builder
	b.Grow(len(relevancePrefix) + len(field))
	b.WriteString(relevancePrefix)
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// uniqueAlias suffixes alias with _2, _3, ... until it is not in seen, then
// records it.
func uniqueAlias(alias string, seen map[string]bool) string {
	out := alias
	for n := 2; seen[out]; n++ {
		out = alias + "_" + strconv.Itoa(n)
	}
	seen[out] = true
	return out
}
