package storage

import (
	"context"
	"strings"

	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

// Dialect identifies the SQL product whose syntax and capabilities apply.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectOther    Dialect = "other"
)

// DialectFromDriver maps a driver identity to a Dialect. Unknown but
// non-empty names map to DialectOther.
func DialectFromDriver(name string) Dialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgsql", "pgx", "pq":
		return DialectPostgres
	case "mysql", "mariadb":
		return DialectMySQL
	case "sqlite", "sqlite3":
		return DialectSQLite
	default:
		return DialectOther
	}
}

func (d Dialect) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	if d == DialectPostgres {
		return sqlbuilder.PlaceholderDollar
	}
	return sqlbuilder.PlaceholderQuestion
}

// NativeILike reports whether the dialect has a case-insensitive pattern operator.
func (d Dialect) NativeILike() bool {
	return d == DialectPostgres
}

// LikeEscape returns the ESCAPE clause appended to LIKE comparisons, or ""
// when the dialect already treats backslash as the default escape.
func (d Dialect) LikeEscape() string {
	switch d {
	case DialectPostgres, DialectMySQL:
		return ""
	default:
		return ` ESCAPE '\'`
	}
}

// Connection is what the search core needs from a host database handle.
type Connection interface {
	// DriverName reports the driver identity of the connection.
	DriverName() (string, error)
	// ProbeBool runs a read-only query returning one boolean-like scalar.
	ProbeBool(ctx context.Context, query string) (bool, error)
	// QuoteIdentifier wraps a single (undotted) identifier per dialect rules.
	QuoteIdentifier(name string) string
}

// LiteralQuoter is implemented by connections with a native string quoting
// facility.
type LiteralQuoter interface {
	QuoteLiteral(s string) string
}
