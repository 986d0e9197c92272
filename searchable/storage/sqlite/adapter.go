package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ministore/searchable/searchable/storage"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverName}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

// Connect opens the database with a busy timeout and case-sensitive LIKE,
// so that only the case-insensitive search variants ignore case.
func (a *Adapter) Connect(ctx context.Context) (*Conn, error) {
	dsn := a.Path
	if !strings.Contains(dsn, "?") {
		dsn = dsn + "?" + dsnParams
	} else {
		dsn = dsn + "&" + dsnParams
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %s", a.Path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping sqlite %s", a.Path)
	}
	return Wrap(db), nil
}

// Conn is a SQLite storage.Connection. SQLite has no literal quoting API;
// literals use the generic quote-doubling path.
type Conn struct {
	*storage.SQLConn
}

func Wrap(db *sql.DB) *Conn {
	return &Conn{SQLConn: storage.NewSQLConn(db, "sqlite")}
}
