package sqlbuilder

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func newRenderer(style PlaceholderStyle) *Renderer {
	return &Renderer{Builder: New(style), LikeEscape: ` ESCAPE '\'`}
}

func TestBuilderPlaceholders(t *testing.T) {
	b := New(PlaceholderDollar)
	if got := b.Arg("a"); got != "$1" {
		t.Fatalf("first placeholder = %s", got)
	}
	for i := 0; i < 9; i++ {
		b.Arg(i)
	}
	if got := b.Arg("z"); got != "$11" {
		t.Fatalf("eleventh placeholder = %s", got)
	}
	if b.Len() != 11 {
		t.Fatalf("len = %d", b.Len())
	}

	q := New(PlaceholderQuestion)
	if got := q.Arg(1); got != "?" {
		t.Fatalf("question placeholder = %s", got)
	}
}

func TestColumnQuotesEachPart(t *testing.T) {
	r := newRenderer(PlaceholderQuestion)
	tests := map[string]string{
		"name":       `"name"`,
		"users.name": `"users"."name"`,
		"users.*":    `"users".*`,
		`we"ird`:     `"we""ird"`,
		"a.b.c":      `"a"."b"."c"`,
	}
	for in, want := range tests {
		got, err := Column{Name: in}.Render(r)
		if err != nil {
			t.Fatalf("Render(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Render(%q) = %s, want %s", in, got, want)
		}
	}

	r.QuoteIdent = func(s string) string { return "`" + s + "`" }
	got, _ := Column{Name: "users.name"}.Render(r)
	if got != "`users`.`name`" {
		t.Errorf("custom quote = %s", got)
	}

	_, err := (Column{}).Render(r)
	if err == nil {
		t.Fatalf("expected error for empty column")
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "sqlbuilder/expr.go") {
		t.Fatalf("render errors should carry a stack trace")
	}
}

func TestComparisonLikeEscape(t *testing.T) {
	r := newRenderer(PlaceholderQuestion)
	got, err := Comparison{Left: Column{Name: "name"}, Op: "LIKE", Right: Param{Value: "%x%"}}.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != `"name" LIKE ? ESCAPE '\'` {
		t.Fatalf("got %s", got)
	}

	got, _ = Comparison{Left: Column{Name: "name"}, Op: "=", Right: Param{Value: "x"}}.Render(r)
	if got != `"name" = ?` {
		t.Fatalf("equality should not get escape clause: %s", got)
	}
}

func TestGroupsSkipEmptyChildren(t *testing.T) {
	r := newRenderer(PlaceholderDollar)
	e := Or{
		Or{},
		Comparison{Left: Column{Name: "a"}, Op: "=", Right: Param{Value: 1}},
		And{Or{}, And{}},
		Comparison{Left: Column{Name: "b"}, Op: "=", Right: Param{Value: 2}},
	}
	got, args, err := Render(r, e)
	if err != nil {
		t.Fatal(err)
	}
	if got != `("a" = $1 OR "b" = $2)` {
		t.Fatalf("got %s", got)
	}
	if !reflect.DeepEqual(args, []any{1, 2}) {
		t.Fatalf("args = %v", args)
	}

	if !IsEmpty(Or{And{}, Or{nil}}) {
		t.Fatalf("nested empty groups should be empty")
	}
	if IsEmpty(Or{Raw{SQL: "1=1"}}) {
		t.Fatalf("group with a raw child is not empty")
	}
}

func TestRawRewritesPlaceholders(t *testing.T) {
	r := newRenderer(PlaceholderDollar)
	r.Builder.Arg("earlier")
	got, err := Raw{SQL: "a = ? AND b = '?' AND c = ?", Args: []any{1, 2}}.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a = $2 AND b = '?' AND c = $3" {
		t.Fatalf("got %s", got)
	}

	if _, err := (Raw{SQL: "a = ?"}).Render(r); err == nil {
		t.Fatalf("expected error for missing arg")
	}
	if _, err := (Raw{SQL: "a = 1", Args: []any{1}}).Render(r); err == nil {
		t.Fatalf("expected error for unused arg")
	}
}

func TestCaseWhenAndSum(t *testing.T) {
	r := newRenderer(PlaceholderQuestion)
	cw := func(col string, w float64) Expr {
		return CaseWhen{
			When: Comparison{Left: Column{Name: col}, Op: "LIKE", Right: Literal("'%x%'")},
			Then: Number{Value: w},
			Else: Number{Value: 0},
		}
	}
	got, err := Sum{cw("name", 2), cw("email", 1.5)}.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `(CASE WHEN "name" LIKE '%x%' ESCAPE '\' THEN 2 ELSE 0 END + CASE WHEN "email" LIKE '%x%' ESCAPE '\' THEN 1.5 ELSE 0 END)`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	if r.Builder.Len() != 0 {
		t.Fatalf("literals must not bind args")
	}
}

type fakeRelations struct{ seen []string }

func (f *fakeRelations) RenderRelated(_ *Renderer, relation, cond string) (string, error) {
	f.seen = append(f.seen, relation)
	return "EXISTS(" + relation + ": " + cond + ")", nil
}

func TestRelatedUsesResolver(t *testing.T) {
	r := newRenderer(PlaceholderQuestion)
	e := Related{Relation: "posts", Cond: Or{Comparison{Left: Column{Name: "title"}, Op: "=", Right: Param{Value: "x"}}}}
	if _, err := e.Render(r); err == nil || !strings.Contains(err.Error(), "no relation resolver") {
		t.Fatalf("expected resolver error, got %v", err)
	}

	rel := &fakeRelations{}
	r.Relations = rel
	got, err := e.Render(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != `EXISTS(posts: ("title" = ?))` {
		t.Fatalf("got %s", got)
	}
	if len(rel.seen) != 1 || rel.seen[0] != "posts" {
		t.Fatalf("resolver calls = %v", rel.seen)
	}
}
