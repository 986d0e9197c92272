package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
	driver "github.com/go-sql-driver/mysql"

	"github.com/ministore/searchable/searchable/storage"
)

type Adapter struct {
	DSN string
}

func New(dsn string) *Adapter {
	return &Adapter{DSN: dsn}
}

func (a *Adapter) Connect(ctx context.Context) (*Conn, error) {
	cfg, err := driver.ParseDSN(a.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "parse mysql dsn")
	}
	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "mysql connector")
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return Wrap(db), nil
}

// Conn is a MySQL storage.Connection.
type Conn struct {
	*storage.SQLConn
}

func Wrap(db *sql.DB) *Conn {
	return &Conn{SQLConn: storage.NewSQLConn(db, "mysql")}
}

func (c *Conn) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// literalEscaper mirrors the escaping MySQL applies when
// NO_BACKSLASH_ESCAPES is off.
var literalEscaper = strings.NewReplacer(
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
)

func (c *Conn) QuoteLiteral(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}
