package sqlite

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// Soundex returns the four-character American Soundex code of s, or "" when
// s has no ASCII letters. It backs the soundex() SQL function registered on
// every connection.
func Soundex(s string) string {
	letters := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
	if letters == "" {
		return ""
	}
	return matchr.Soundex(letters)
}

func soundexValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return Soundex(x)
	case []byte:
		return Soundex(string(x))
	default:
		return Soundex(strings.TrimSpace(fmt.Sprint(x)))
	}
}
