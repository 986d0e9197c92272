package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ministore/searchable/searchable/storage"
)

type Adapter struct {
	DSN    string
	Schema string // optional; pinned first on search_path
}

func New(dsn, schema string) *Adapter {
	return &Adapter{DSN: dsn, Schema: schema}
}

var schemaNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (a *Adapter) Connect(ctx context.Context) (*Conn, error) {
	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres dsn")
	}
	if a.Schema != "" {
		if !schemaNameRe.MatchString(a.Schema) {
			return nil, errors.Newf("invalid postgres schema name %q (must match %s)", a.Schema, schemaNameRe.String())
		}
		// Include public as a fallback for built-ins and extensions; schema is first.
		if cfg.RuntimeParams == nil {
			cfg.RuntimeParams = make(map[string]string)
		}
		cfg.RuntimeParams["search_path"] = fmt.Sprintf("%s,public", pgx.Identifier{a.Schema}.Sanitize())
	}

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return Wrap(db), nil
}

// Conn is a postgres storage.Connection.
type Conn struct {
	*storage.SQLConn
}

// Wrap adapts an already-open postgres handle.
func Wrap(db *sql.DB) *Conn {
	return &Conn{SQLConn: storage.NewSQLConn(db, "postgres")}
}

func (c *Conn) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// QuoteLiteral quotes s for a server running with
// standard_conforming_strings=on (the default since 9.1): backslashes are
// literal and only single quotes need doubling.
func (c *Conn) QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, "\x00", ""), "'", "''") + "'"
}
