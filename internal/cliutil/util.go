package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/ministore/searchable/internal/cliopt"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
	FormatSQL    OutputFormat = "sql"
)

// ParseOutputFormat resolves the --format value. Unset or unknown values
// mean pretty when w is a terminal and json otherwise.
func ParseOutputFormat(s string, w io.Writer) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON, FormatSQL:
		return OutputFormat(s)
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatPretty
	}
	return FormatJSON
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// ResolveDSN transforms the user-provided --dsn value into a backend-specific reference.
//
//   - sqlite: an existing directory means <dir>/searchable.db, anything else is a file path.
//   - postgres/mysql: returned as-is.
func ResolveDSN(g cliopt.GlobalOptions) string {
	switch strings.ToLower(g.Backend) {
	case "sqlite", "sqlite3", "":
		if fi, err := os.Stat(g.DSN); err == nil && fi.IsDir() {
			return filepath.Join(g.DSN, "searchable.db")
		}
		return g.DSN
	default:
		return g.DSN
	}
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
