package searchable_test

import (
	"context"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/ministore/searchable/searchable"
	"github.com/ministore/searchable/searchable/planner"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
	"github.com/ministore/searchable/searchable/storage/sqlite"
)

const fixtureSQL = `
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT NOT NULL);
CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL, title TEXT NOT NULL);
INSERT INTO users (id, name, email) VALUES
	(1, 'John', 'john@example.com'),
	(2, 'Alice', 'alice@example.org'),
	(3, 'Sale 50% off', 'sale@example.com'),
	(4, 'Sale 500 off', 'bulk@example.com'),
	(5, 'a_b', 'ab@example.com'),
	(6, 'axb', 'axb@example.com'),
	(7, 'Mary', 'john.fan@example.com'),
	(8, 'a_bc', 'abc@example.com'),
	(9, 'Big John', 'big@example.com');
INSERT INTO posts (id, user_id, title) VALUES
	(1, 2, 'Learning Go'),
	(2, 1, 'Cooking');
`

func newSQLite(t *testing.T) *sqlite.Conn {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	conn, err := sqlite.New(dbPath).Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if _, err := conn.DB.Exec(fixtureSQL); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return conn
}

func usersSelect() *planner.Select {
	sel := planner.NewSelect("users")
	sel.Columns = []string{"users.id"}
	sel.Relate("posts", planner.Relation{Table: "posts", ForeignKey: "user_id"})
	return sel
}

// matchingIDs runs pred against users and returns the sorted ids.
func matchingIDs(t *testing.T, conn *sqlite.Conn, pred sqlbuilder.Expr) []int64 {
	t.Helper()

	sel := usersSelect()
	searchable.Apply(sel, pred)
	query, args, err := sel.Build(conn)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rows, err := conn.DB.Query(query, args...)
	if err != nil {
		t.Fatalf("Query: %v\n%s", err, query)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func expectIDs(t *testing.T, name string, got []int64, want ...int64) {
	t.Helper()
	if want == nil {
		want = []int64{}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s: got ids %v, want %v", name, got, want)
	}
}

func TestSearchModes_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newSQLite(t)
	s := searchable.New(conn, searchable.WithDefaults(searchable.FieldList{"name"}))

	pred, err := s.Search(ctx, "JOHN", searchable.CaseInsensitive(true))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	expectIDs(t, "case-insensitive search", matchingIDs(t, conn, pred), 1, 9)

	pred, _ = s.Search(ctx, "JOHN")
	expectIDs(t, "case-sensitive search", matchingIDs(t, conn, pred))

	pred, _ = s.Search(ctx, "john", searchable.Fields("name", "email"))
	expectIDs(t, "search over two fields", matchingIDs(t, conn, pred), 1, 7)

	pred, _ = s.ExactMatch(ctx, "a_b")
	expectIDs(t, "exact match excludes supersets", matchingIDs(t, conn, pred), 5)

	pred, _ = s.KeywordSearch(ctx, "alice nobody", searchable.CaseInsensitive(true))
	expectIDs(t, "keyword search", matchingIDs(t, conn, pred), 2)

	pred, _ = s.KeywordSearch(ctx, "   ")
	expectIDs(t, "keyword search without keywords", matchingIDs(t, conn, pred), 1, 2, 3, 4, 5, 6, 7, 8, 9)
}

func TestPatternEscaping_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newSQLite(t)
	s := searchable.New(conn)

	pred, _ := s.Search(ctx, "50%", searchable.Fields("name"))
	expectIDs(t, "percent is literal", matchingIDs(t, conn, pred), 3)

	pred, _ = s.Search(ctx, "a_b", searchable.Fields("name"), searchable.CaseInsensitive(true))
	expectIDs(t, "underscore is literal", matchingIDs(t, conn, pred), 5, 8)
}

func TestSearchAcross_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newSQLite(t)
	s := searchable.New(conn)
	posts := searchable.Relation{Name: "posts", Fields: []string{"title"}}

	pred, err := s.SearchAcross(ctx, "Go", searchable.Fields("name"), searchable.Relations(posts))
	if err != nil {
		t.Fatalf("SearchAcross: %v", err)
	}
	expectIDs(t, "match through relation", matchingIDs(t, conn, pred), 2)

	pred, _ = s.SearchAcross(ctx, "mary cooking", searchable.Fields("name"),
		searchable.ByKeywords(true), searchable.CaseInsensitive(true), searchable.Relations(posts))
	// Keywords apply to own fields only; no title contains the whole term.
	expectIDs(t, "keywords on base, whole term on relation", matchingIDs(t, conn, pred), 7)

	pred, _ = s.SearchAcross(ctx, "cook", searchable.Fields("name"),
		searchable.CaseInsensitive(true), searchable.Relations(posts))
	expectIDs(t, "case-insensitive relation match", matchingIDs(t, conn, pred), 1)
}

func TestFuzzySearch_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newSQLite(t)
	s := searchable.New(conn)

	pred, err := s.FuzzySearch(ctx, "Jon", searchable.Fields("name"))
	if err != nil {
		t.Fatalf("FuzzySearch: %v", err)
	}
	expectIDs(t, "soundex match", matchingIDs(t, conn, pred), 1)

	pred, _ = s.FuzzySearch(ctx, "ALI", searchable.Fields("name"))
	expectIDs(t, "substring match", matchingIDs(t, conn, pred), 2)
}

func TestRankedSearch_SQLite(t *testing.T) {
	ctx := context.Background()
	conn := newSQLite(t)
	s := searchable.New(conn)

	ranked, err := s.RankedSearch(ctx, "JOHN", searchable.Weights{{Field: "name", Value: 2}, {Field: "email", Value: 1}})
	if err != nil {
		t.Fatalf("RankedSearch: %v", err)
	}
	sel := usersSelect()
	ranked.Apply(sel)
	query, args, err := sel.Build(conn)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rows, err := conn.DB.Query(query, args...)
	if err != nil {
		t.Fatalf("Query: %v\n%s", err, query)
	}
	defer rows.Close()

	type scored struct {
		id                 int64
		name, email, total float64
	}
	var got []scored
	for rows.Next() {
		var r scored
		if err := rows.Scan(&r.id, &r.name, &r.email, &r.total); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		got = append(got, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	// Name-only (9) outranks email-only (7).
	want := []scored{
		{id: 1, name: 2, email: 1, total: 3},
		{id: 9, name: 2, email: 0, total: 2},
		{id: 7, name: 0, email: 1, total: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked rows = %+v, want %+v\n%s", got, want, query)
	}
}
