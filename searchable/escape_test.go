package searchable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john", "john"},
		{"", ""},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\temp`, `c:\\temp`},
		{`100%_\`, `100\%\_\\`},
		{"żółw_%", `żółw\_\%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapePattern(tt.in), "EscapePattern(%q)", tt.in)
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%john%", containsPattern("john"))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
}

func TestQuoteLiteral(t *testing.T) {
	plain := &fakeConn{driver: "sqlite"}
	assert.Equal(t, "'abc'", QuoteLiteral(plain, "abc"))
	assert.Equal(t, "'O''Neil'", QuoteLiteral(plain, "O'Neil"))
	assert.Equal(t, "''''''", QuoteLiteral(plain, "''"))

	native := quotingConn{fakeConn: plain}
	assert.Equal(t, "Q(O'Neil)", QuoteLiteral(native, "O'Neil"))
}
