// Package searchable builds dialect-aware search predicates (substring,
// exact, keyword, cross-relation, fuzzy and ranked) that a host query
// builder merges into its own SELECT.
package searchable

import (
	"context"
	"log/slog"

	"github.com/ministore/searchable/searchable/dialect"
	"github.com/ministore/searchable/searchable/storage"
)

// Searcher builds search predicates for one connection. It executes no
// queries apart from the memoized capability probe.
type Searcher struct {
	conn     storage.Connection
	probe    *dialect.Probe
	defaults DefaultFielder
	cache    *dialect.CapabilityCache
	log      *slog.Logger
}

type SearcherOption func(*Searcher)

// WithDefaults sets the fields searched when a call passes none.
func WithDefaults(d DefaultFielder) SearcherOption {
	return func(s *Searcher) { s.defaults = d }
}

// WithCache shares a capability cache, e.g. one per process.
func WithCache(c *dialect.CapabilityCache) SearcherOption {
	return func(s *Searcher) { s.cache = c }
}

func WithLogger(l *slog.Logger) SearcherOption {
	return func(s *Searcher) { s.log = l }
}

func New(conn storage.Connection, opts ...SearcherOption) *Searcher {
	s := &Searcher{conn: conn}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.cache == nil {
		s.cache = dialect.NewCapabilityCache()
	}
	s.probe = dialect.NewProbe(conn, s.cache, s.log)
	return s
}

// Dialect reports the connection's dialect.
func (s *Searcher) Dialect() (storage.Dialect, error) {
	d, err := s.probe.Dialect()
	if err != nil {
		return "", DialectUnavailableError(err)
	}
	return d, nil
}

func (s *Searcher) conditions() (Conditions, error) {
	d, err := s.Dialect()
	if err != nil {
		return Conditions{}, err
	}
	return Conditions{Dialect: d, Conn: s.conn}, nil
}

// Capabilities is what the connection supports for fuzzy search.
type Capabilities struct {
	Dialect          storage.Dialect `json:"dialect"`
	ExtendedDistance bool            `json:"extended_distance"`
}

// Capabilities reports the dialect and, running the probe if it has not run
// yet, whether an edit-distance function is available.
func (s *Searcher) Capabilities(ctx context.Context) (Capabilities, error) {
	d, err := s.Dialect()
	if err != nil {
		return Capabilities{}, err
	}
	return Capabilities{Dialect: d, ExtendedDistance: s.probe.HasExtendedDistance(ctx, d)}, nil
}
