package searchable

import "github.com/ministore/searchable/searchable/storage/sqlbuilder"

// QueryAdapter is the part of a host query builder that search results are
// applied to. AND/OR composition and raw fragments come from the sqlbuilder
// tree; relation sub-predicates (sqlbuilder.Related) are rendered by the
// host's sqlbuilder.RelationResolver.
type QueryAdapter interface {
	// Where adds cond, AND-combined with the existing conditions.
	Where(cond sqlbuilder.Expr)
	// SelectAs adds expr as an output column named alias.
	SelectAs(alias string, expr sqlbuilder.Expr)
	// OrderByDesc orders by the named output column, descending.
	OrderByDesc(column string)
}

// Apply attaches pred to q. An empty predicate leaves q untouched.
func Apply(q QueryAdapter, pred sqlbuilder.Expr) {
	if sqlbuilder.IsEmpty(pred) {
		return
	}
	q.Where(pred)
}

// Apply attaches the match predicate, the relevance columns and the
// descending relevance order to q.
func (r *Ranked) Apply(q QueryAdapter) {
	q.Where(r.Match)
	for _, col := range r.Relevance.Columns {
		q.SelectAs(col.Alias, col.Expr)
	}
	q.SelectAs(r.Relevance.TotalAlias, r.Relevance.Total)
	q.OrderByDesc(r.Relevance.TotalAlias)
}
