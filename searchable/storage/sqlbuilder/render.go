package sqlbuilder

// RelationResolver renders "at least one related row satisfies cond" for a
// named relation. Implementations must not allocate placeholders: cond has
// already been rendered and its arguments precede anything appended later.
type RelationResolver interface {
	RenderRelated(r *Renderer, relation, cond string) (string, error)
}

// Renderer carries the dialect rules needed to turn an Expr into SQL text.
type Renderer struct {
	Builder *Builder
	// QuoteIdent quotes one identifier part. Nil means ANSI double quotes.
	QuoteIdent func(string) string
	// LikeEscape is appended after LIKE/ILIKE comparisons, e.g. " ESCAPE '\'".
	LikeEscape string
	Relations  RelationResolver
}

func (r *Renderer) quote(ident string) string {
	if r.QuoteIdent != nil {
		return r.QuoteIdent(ident)
	}
	out := make([]byte, 0, len(ident)+2)
	out = append(out, '"')
	for i := 0; i < len(ident); i++ {
		if ident[i] == '"' {
			out = append(out, '"')
		}
		out = append(out, ident[i])
	}
	return string(append(out, '"'))
}

// Render renders e and returns the SQL text with the arguments bound so far.
func Render(r *Renderer, e Expr) (string, []any, error) {
	if IsEmpty(e) {
		return "", r.Builder.Args(), nil
	}
	s, err := e.Render(r)
	if err != nil {
		return "", nil, err
	}
	return s, r.Builder.Args(), nil
}
