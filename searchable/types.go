package searchable

import (
	"sort"

	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// DefaultFielder is implemented by searchable entities that declare the
// fields searched when a call names none.
type DefaultFielder interface {
	SearchableFields() []string
}

// FieldList is a static DefaultFielder.
type FieldList []string

func (f FieldList) SearchableFields() []string { return f }

// Weight pairs a field with its relevance weight.
type Weight struct {
	Field string
	Value float64
}

// Weights is an ordered weight map; order fixes the relevance column order.
type Weights []Weight

// WeightsFromMap orders m by field name.
func WeightsFromMap(m map[string]float64) Weights {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make(Weights, 0, len(names))
	for _, name := range names {
		out = append(out, Weight{Field: name, Value: m[name]})
	}
	return out
}

// Relation names a related entity and the fields searched on it.
type Relation struct {
	Name   string
	Fields []string
}

// RelevanceColumn is one per-field conditional weight expression.
type RelevanceColumn struct {
	Field string
	Alias string
	Expr  sqlbuilder.Expr
}

// Relevance is the scored output of a ranked search.
type Relevance struct {
	Columns    []RelevanceColumn
	Total      sqlbuilder.Expr
	TotalAlias string
}

// Ranked is the result of RankedSearch: a match predicate plus the
// relevance expressions ordering the matches.
type Ranked struct {
	Match     sqlbuilder.Expr
	Relevance Relevance
}

// Option configures a single search call.
type Option interface {
	apply(*callConfig)
}

type callConfig struct {
	fields          []string
	caseInsensitive bool
	byKeywords      bool
	maxDistance     int
	relations       []Relation
}

func newCallConfig(opts []Option) callConfig {
	cfg := callConfig{maxDistance: DefaultMaxDistance}
	for _, o := range opts {
		o.apply(&cfg)
	}
	return cfg
}

type optionFunc func(*callConfig)

func (f optionFunc) apply(cfg *callConfig) { f(cfg) }

// Fields sets the fields searched by the call, overriding the defaults.
func Fields(fields ...string) Option {
	return optionFunc(func(cfg *callConfig) {
		cfg.fields = append(cfg.fields, fields...)
	})
}

// CaseInsensitive selects case-insensitive substring matching.
func CaseInsensitive(on bool) Option {
	return optionFunc(func(cfg *callConfig) {
		cfg.caseInsensitive = on
	})
}

// ByKeywords makes SearchAcross split the term into keywords for the base
// fields. Relation fields are always matched against the whole term.
func ByKeywords(on bool) Option {
	return optionFunc(func(cfg *callConfig) {
		cfg.byKeywords = on
	})
}

// MaxDistance sets the inclusive edit distance used by FuzzySearch.
func MaxDistance(n int) Option {
	return optionFunc(func(cfg *callConfig) {
		cfg.maxDistance = n
	})
}

// Relations adds relations searched by SearchAcross.
func Relations(rels ...Relation) Option {
	return optionFunc(func(cfg *callConfig) {
		cfg.relations = append(cfg.relations, rels...)
	})
}
