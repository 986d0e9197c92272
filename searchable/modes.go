package searchable

import (
	"context"
	"strings"

	"github.com/ministore/searchable/searchable/storage"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// Search matches rows where any field contains term.
func (s *Searcher) Search(ctx context.Context, term string, opts ...Option) (sqlbuilder.Expr, error) {
	cfg := newCallConfig(opts)
	fields, err := ResolveFields(cfg.fields, s.defaults)
	if err != nil {
		return nil, err
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}
	return containsAny(c, fields, term, cfg.caseInsensitive), nil
}

// ExactMatch matches rows where any field equals term.
func (s *Searcher) ExactMatch(ctx context.Context, term string, opts ...Option) (sqlbuilder.Expr, error) {
	cfg := newCallConfig(opts)
	fields, err := ResolveFields(cfg.fields, s.defaults)
	if err != nil {
		return nil, err
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}
	out := make(sqlbuilder.Or, 0, len(fields))
	for _, f := range fields {
		out = append(out, c.Equals(f, term))
	}
	return out, nil
}

// KeywordSearch splits term on whitespace and matches rows where any field
// contains any keyword. A term without keywords yields an empty predicate.
func (s *Searcher) KeywordSearch(ctx context.Context, term string, opts ...Option) (sqlbuilder.Expr, error) {
	cfg := newCallConfig(opts)
	fields, err := ResolveFields(cfg.fields, s.defaults)
	if err != nil {
		return nil, err
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}
	return keywordsAny(c, fields, Keywords(term), cfg.caseInsensitive), nil
}

// SearchAcross matches the base fields (by keyword when ByKeywords is set)
// or, per relation, any related row whose fields contain the whole term.
func (s *Searcher) SearchAcross(ctx context.Context, term string, opts ...Option) (sqlbuilder.Expr, error) {
	cfg := newCallConfig(opts)
	fields, err := ResolveFields(cfg.fields, s.defaults)
	if err != nil {
		return nil, err
	}
	for _, rel := range cfg.relations {
		if len(rel.Fields) == 0 {
			e := MissingFieldsError()
			e.Field = rel.Name
			return nil, e
		}
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}

	var base sqlbuilder.Expr
	if cfg.byKeywords {
		base = keywordsAny(c, fields, Keywords(term), cfg.caseInsensitive)
	} else {
		base = containsAny(c, fields, term, cfg.caseInsensitive)
	}

	out := sqlbuilder.Or{base}
	for _, rel := range cfg.relations {
		out = append(out, sqlbuilder.Related{
			Relation: rel.Name,
			Cond:     containsAny(c, rel.Fields, term, cfg.caseInsensitive),
		})
	}
	return out, nil
}

// FuzzySearch matches rows approximately equal to term. With a levenshtein
// function (postgres + fuzzystrmatch) fields within MaxDistance edits match.
// Postgres without it degrades to case-insensitive substring matching; other
// dialects use substring matching or equal SOUNDEX codes.
func (s *Searcher) FuzzySearch(ctx context.Context, term string, opts ...Option) (sqlbuilder.Expr, error) {
	cfg := newCallConfig(opts)
	fields, err := ResolveFields(cfg.fields, s.defaults)
	if err != nil {
		return nil, err
	}
	c, err := s.conditions()
	if err != nil {
		return nil, err
	}

	out := make(sqlbuilder.Or, 0, len(fields))
	switch {
	case s.probe.HasExtendedDistance(ctx, c.Dialect):
		for _, f := range fields {
			out = append(out, c.WithinDistance(f, term, cfg.maxDistance))
		}
	case c.Dialect == storage.DialectPostgres:
		s.log.DebugContext(ctx, "levenshtein unavailable; fuzzy search falls back to substring match")
		for _, f := range fields {
			out = append(out, c.Contains(f, term, true))
		}
	default:
		for _, f := range fields {
			out = append(out, sqlbuilder.Or{c.Contains(f, term, true), c.SoundsLike(f, term)})
		}
	}
	return out, nil
}

// Keywords splits term on whitespace, dropping empty tokens.
func Keywords(term string) []string {
	return strings.Fields(term)
}

func containsAny(c Conditions, fields []string, term string, caseInsensitive bool) sqlbuilder.Or {
	out := make(sqlbuilder.Or, 0, len(fields))
	for _, f := range fields {
		out = append(out, c.Contains(f, term, caseInsensitive))
	}
	return out
}

func keywordsAny(c Conditions, fields, keywords []string, caseInsensitive bool) sqlbuilder.Or {
	out := make(sqlbuilder.Or, 0, len(fields)*len(keywords))
	for _, f := range fields {
		for _, kw := range keywords {
			out = append(out, c.Contains(f, kw, caseInsensitive))
		}
	}
	return out
}
