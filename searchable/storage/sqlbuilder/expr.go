package sqlbuilder

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Expr is a node of a SQL expression tree. Rendering appends bound values to
// the renderer's Builder in textual order.
type Expr interface {
	Render(r *Renderer) (string, error)
}

// Column is a possibly dotted identifier (table.column). Each part is quoted.
type Column struct {
	Name string
}

func (c Column) Render(r *Renderer) (string, error) {
	if c.Name == "" {
		return "", errors.New("empty column name")
	}
	parts := strings.Split(c.Name, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = r.quote(p)
	}
	return strings.Join(parts, "."), nil
}

// Param is a bound value.
type Param struct {
	Value any
}

func (p Param) Render(r *Renderer) (string, error) {
	return r.Builder.Arg(p.Value), nil
}

// Number is a numeric literal embedded in the SQL text.
type Number struct {
	Value float64
}

func (n Number) Render(*Renderer) (string, error) {
	return strconv.FormatFloat(n.Value, 'g', -1, 64), nil
}

// Literal is an already-quoted SQL literal, emitted verbatim.
type Literal string

func (l Literal) Render(*Renderer) (string, error) {
	if l == "" {
		return "", errors.New("empty literal")
	}
	return string(l), nil
}

// Raw is a dialect-native fragment. Each ? outside a quoted string consumes
// one entry of Args.
type Raw struct {
	SQL  string
	Args []any
}

func (x Raw) Render(r *Renderer) (string, error) {
	var b strings.Builder
	b.Grow(len(x.SQL) + 8)
	next := 0
	var quote rune
	for _, c := range x.SQL {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			b.WriteRune(c)
		case c == '\'' || c == '"' || c == '`':
			quote = c
			b.WriteRune(c)
		case c == '?':
			if next >= len(x.Args) {
				return "", errors.Newf("raw fragment %q: more placeholders than args (%d)", x.SQL, len(x.Args))
			}
			b.WriteString(r.Builder.Arg(x.Args[next]))
			next++
		default:
			b.WriteRune(c)
		}
	}
	if next != len(x.Args) {
		return "", errors.Newf("raw fragment %q: %d placeholders for %d args", x.SQL, next, len(x.Args))
	}
	return b.String(), nil
}

// Func is a function call such as LOWER(x).
type Func struct {
	Name string
	Args []Expr
}

func (f Func) Render(r *Renderer) (string, error) {
	parts := make([]string, 0, len(f.Args))
	for _, a := range f.Args {
		s, err := a.Render(r)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")", nil
}

// Comparison is Left Op Right. LIKE and ILIKE get the dialect's escape clause.
type Comparison struct {
	Left  Expr
	Op    string
	Right Expr
}

func (c Comparison) Render(r *Renderer) (string, error) {
	left, err := c.Left.Render(r)
	if err != nil {
		return "", err
	}
	right, err := c.Right.Render(r)
	if err != nil {
		return "", err
	}
	s := left + " " + c.Op + " " + right
	if c.Op == "LIKE" || c.Op == "ILIKE" {
		s += r.LikeEscape
	}
	return s, nil
}

// And joins its non-empty children with AND.
type And []Expr

func (a And) Render(r *Renderer) (string, error) { return group(r, a, " AND ") }

// Or joins its non-empty children with OR.
type Or []Expr

func (o Or) Render(r *Renderer) (string, error) { return group(r, o, " OR ") }

func group(r *Renderer, exprs []Expr, sep string) (string, error) {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if IsEmpty(e) {
			continue
		}
		s, err := e.Render(r)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// Sum adds its terms.
type Sum []Expr

func (s Sum) Render(r *Renderer) (string, error) {
	if len(s) == 0 {
		return "0", nil
	}
	parts := make([]string, 0, len(s))
	for _, t := range s {
		p, err := t.Render(r)
		if err != nil {
			return "", err
		}
		parts = append(parts, p)
	}
	return "(" + strings.Join(parts, " + ") + ")", nil
}

// CaseWhen is CASE WHEN When THEN Then ELSE Else END.
type CaseWhen struct {
	When Expr
	Then Expr
	Else Expr
}

func (c CaseWhen) Render(r *Renderer) (string, error) {
	when, err := c.When.Render(r)
	if err != nil {
		return "", err
	}
	then, err := c.Then.Render(r)
	if err != nil {
		return "", err
	}
	els, err := c.Else.Render(r)
	if err != nil {
		return "", err
	}
	return "CASE WHEN " + when + " THEN " + then + " ELSE " + els + " END", nil
}

// Related holds when at least one row of the named relation satisfies Cond.
// The host resolves the relation through Renderer.Relations.
type Related struct {
	Relation string
	Cond     Expr
}

func (x Related) Render(r *Renderer) (string, error) {
	if r.Relations == nil {
		return "", errors.Newf("relation %q: renderer has no relation resolver", x.Relation)
	}
	cond, err := x.Cond.Render(r)
	if err != nil {
		return "", err
	}
	return r.Relations.RenderRelated(r, x.Relation, cond)
}

// IsEmpty reports whether e contributes no condition: nil, or an And/Or
// whose children are all empty.
func IsEmpty(e Expr) bool {
	switch x := e.(type) {
	case nil:
		return true
	case And:
		return allEmpty(x)
	case Or:
		return allEmpty(x)
	default:
		return false
	}
}

func allEmpty(exprs []Expr) bool {
	for _, e := range exprs {
		if !IsEmpty(e) {
			return false
		}
	}
	return true
}
