// Package sqlbuilder renders dialect-neutral predicate trees into SQL text
// with bound arguments.
package sqlbuilder

import "strconv"

// PlaceholderStyle selects how bound arguments appear in SQL text.
type PlaceholderStyle int

const (
	PlaceholderQuestion PlaceholderStyle = iota // ?
	PlaceholderDollar                           // $1, $2, ...
)

// Builder allocates placeholders and collects their arguments in textual
// order. Numbered placeholders continue across every Arg call.
type Builder struct {
	Style PlaceholderStyle
	args  []any
}

func New(style PlaceholderStyle) *Builder {
	return &Builder{Style: style, args: make([]any, 0, 8)}
}

// Arg binds v and returns its placeholder.
func (b *Builder) Arg(v any) string {
	b.args = append(b.args, v)
	return b.placeholder(len(b.args))
}

func (b *Builder) placeholder(n int) string {
	if b.Style == PlaceholderDollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Args returns a copy of the bound arguments.
func (b *Builder) Args() []any {
	out := make([]any, len(b.args))
	copy(out, b.args)
	return out
}

func (b *Builder) Len() int { return len(b.args) }
