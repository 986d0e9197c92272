package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// SQLConn adapts a *sql.DB to Connection. The driver identity is taken from
// Name when set, otherwise derived from the Go type of db.Driver().
type SQLConn struct {
	DB   *sql.DB
	Name string
}

func NewSQLConn(db *sql.DB, name string) *SQLConn {
	return &SQLConn{DB: db, Name: name}
}

func (c *SQLConn) DriverName() (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New("no database handle")
	}
	if c.Name != "" {
		return c.Name, nil
	}
	name := driverNameFromType(fmt.Sprintf("%T", c.DB.Driver()))
	if name == "" {
		return "", errors.Newf("unrecognised driver %T", c.DB.Driver())
	}
	return name, nil
}

// driverNameFromType recognises the drivers this module ships adapters for
// plus lib/pq.
func driverNameFromType(t string) string {
	switch t {
	case "*stdlib.Driver", "*pq.Driver":
		return "postgres"
	case "*mysql.MySQLDriver":
		return "mysql"
	case "*sqlite.Driver", "*sqlite3.SQLiteDriver":
		return "sqlite"
	}
	if t == "" || t == "<nil>" {
		return ""
	}
	return strings.TrimPrefix(t, "*")
}

func (c *SQLConn) ProbeBool(ctx context.Context, query string) (bool, error) {
	var v any
	if err := c.DB.QueryRowContext(ctx, query).Scan(&v); err != nil {
		return false, errors.Wrap(err, "probe query")
	}
	return truthy(v), nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case []byte:
		return truthyString(string(x))
	case string:
		return truthyString(x)
	default:
		return false
	}
}

func truthyString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "on":
		return true
	}
	return false
}

// QuoteIdentifier uses ANSI double quotes. Dialect adapters override it.
func (c *SQLConn) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (c *SQLConn) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
