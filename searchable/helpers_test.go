package searchable

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ministore/searchable/searchable/storage"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

type fakeConn struct {
	driver      string
	nameErr     error
	probeResult bool
	probeErr    error
	probes      atomic.Int32
	nameCalls   atomic.Int32
}

func (f *fakeConn) DriverName() (string, error) {
	f.nameCalls.Add(1)
	return f.driver, f.nameErr
}

func (f *fakeConn) ProbeBool(context.Context, string) (bool, error) {
	f.probes.Add(1)
	return f.probeResult, f.probeErr
}

func (f *fakeConn) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

// quotingConn has a native literal quoter.
type quotingConn struct {
	*fakeConn
}

func (quotingConn) QuoteLiteral(s string) string {
	return "Q(" + s + ")"
}

type stubRelations struct{}

func (stubRelations) RenderRelated(_ *sqlbuilder.Renderer, relation, cond string) (string, error) {
	return "HAS " + relation + " " + cond, nil
}

func render(t *testing.T, d storage.Dialect, e sqlbuilder.Expr) (string, []any) {
	t.Helper()
	r := &sqlbuilder.Renderer{
		Builder:    sqlbuilder.New(d.PlaceholderStyle()),
		LikeEscape: d.LikeEscape(),
		Relations:  stubRelations{},
	}
	sql, args, err := sqlbuilder.Render(r, e)
	require.NoError(t, err)
	return sql, args
}

type recorder struct {
	calls  []string
	wheres []sqlbuilder.Expr
}

func (r *recorder) Where(cond sqlbuilder.Expr) {
	r.calls = append(r.calls, "where")
	r.wheres = append(r.wheres, cond)
}

func (r *recorder) SelectAs(alias string, _ sqlbuilder.Expr) {
	r.calls = append(r.calls, "select "+alias)
}

func (r *recorder) OrderByDesc(column string) {
	r.calls = append(r.calls, "order "+column)
}

func newSearcher(driver string, opts ...SearcherOption) (*Searcher, *fakeConn) {
	conn := &fakeConn{driver: driver}
	return New(conn, opts...), conn
}
