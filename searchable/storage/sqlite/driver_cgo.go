//go:build sqlite_cgo

package sqlite

// cgo build: github.com/mattn/go-sqlite3, selected with -tags sqlite_cgo.

import (
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver used by New. It is a private
// registration so the soundex() function is attached to every connection.
const DriverName = "sqlite3_searchable"

const dsnParams = "_busy_timeout=5000&_cslike=true"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("soundex", func(s string) string {
				return Soundex(s)
			}, true)
		},
	})
}
