// Package planner is a small reference host for search predicates: a SELECT
// over one table that implements searchable.QueryAdapter and renders
// relation sub-predicates as correlated EXISTS clauses.
package planner

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ministore/searchable/searchable"
	"github.com/ministore/searchable/searchable/dialect"
	"github.com/ministore/searchable/searchable/storage"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// Relation describes how a related table joins to the base table:
// Table.ForeignKey references Base.OwnerKey.
type Relation struct {
	Table      string
	ForeignKey string
	OwnerKey   string
}

type selectColumn struct {
	alias string
	expr  sqlbuilder.Expr
}

// Select accumulates one SELECT statement.
type Select struct {
	Table     string
	Columns   []string
	Relations map[string]Relation
	Limit     int

	where []sqlbuilder.Expr
	extra []selectColumn
	order []string
}

func NewSelect(table string) *Select {
	return &Select{Table: table, Relations: map[string]Relation{}}
}

// Relate registers a relation usable by sqlbuilder.Related nodes.
func (s *Select) Relate(name string, rel Relation) *Select {
	if s.Relations == nil {
		s.Relations = map[string]Relation{}
	}
	s.Relations[name] = rel
	return s
}

func (s *Select) Where(cond sqlbuilder.Expr) {
	if sqlbuilder.IsEmpty(cond) {
		return
	}
	s.where = append(s.where, cond)
}

func (s *Select) SelectAs(alias string, expr sqlbuilder.Expr) {
	s.extra = append(s.extra, selectColumn{alias: alias, expr: expr})
}

func (s *Select) OrderByDesc(column string) {
	s.order = append(s.order, column)
}

// RenderRelated implements sqlbuilder.RelationResolver.
func (s *Select) RenderRelated(r *sqlbuilder.Renderer, relation, cond string) (string, error) {
	rel, ok := s.Relations[relation]
	if !ok {
		return "", searchable.UnknownRelationError(relation)
	}
	ownerKey := rel.OwnerKey
	if ownerKey == "" {
		ownerKey = "id"
	}
	table, err := sqlbuilder.Column{Name: rel.Table}.Render(r)
	if err != nil {
		return "", err
	}
	fk, err := sqlbuilder.Column{Name: rel.Table + "." + rel.ForeignKey}.Render(r)
	if err != nil {
		return "", err
	}
	owner, err := sqlbuilder.Column{Name: s.Table + "." + ownerKey}.Render(r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s = %s AND %s)", table, fk, owner, cond), nil
}

// Build renders the statement for conn's dialect.
func (s *Select) Build(conn storage.Connection) (string, []any, error) {
	d, err := dialect.NewProbe(conn, nil, nil).Dialect()
	if err != nil {
		return "", nil, searchable.DialectUnavailableError(err)
	}
	r := &sqlbuilder.Renderer{
		Builder:    sqlbuilder.New(d.PlaceholderStyle()),
		QuoteIdent: conn.QuoteIdentifier,
		LikeEscape: d.LikeEscape(),
		Relations:  s,
	}
	return s.render(r)
}

func (s *Select) render(r *sqlbuilder.Renderer) (string, []any, error) {
	table, err := sqlbuilder.Column{Name: s.Table}.Render(r)
	if err != nil {
		return "", nil, err
	}

	var cols []string
	if len(s.Columns) == 0 {
		cols = append(cols, table+".*")
	}
	for _, c := range s.Columns {
		q, err := sqlbuilder.Column{Name: c}.Render(r)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, q)
	}
	// Output columns precede WHERE in the text, so their placeholders must be
	// allocated first.
	for _, c := range s.extra {
		expr, err := c.expr.Render(r)
		if err != nil {
			return "", nil, wrapRender(err, "column "+c.alias)
		}
		alias, err := sqlbuilder.Column{Name: c.alias}.Render(r)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, expr+" AS "+alias)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s\nFROM %s", strings.Join(cols, ", "), table)

	if len(s.where) > 0 {
		conds, err := sqlbuilder.And(s.where).Render(r)
		if err != nil {
			return "", nil, wrapRender(err, "where")
		}
		if conds != "" {
			fmt.Fprintf(&b, "\nWHERE %s", conds)
		}
	}

	if len(s.order) > 0 {
		parts := make([]string, 0, len(s.order))
		for _, o := range s.order {
			col, err := sqlbuilder.Column{Name: o}.Render(r)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, col+" DESC")
		}
		fmt.Fprintf(&b, "\nORDER BY %s", strings.Join(parts, ", "))
	}

	if s.Limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", s.Limit)
	}
	return b.String(), r.Builder.Args(), nil
}

func wrapRender(err error, what string) error {
	var se *searchable.Error
	if errors.As(err, &se) {
		return err
	}
	return searchable.Wrap(searchable.ErrRender, "render "+what, err)
}
