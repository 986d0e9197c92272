//go:build !sqlite_cgo

package sqlite

// Pure-Go build (default): modernc.org/sqlite, no C toolchain needed.

import (
	"database/sql/driver"

	msqlite "modernc.org/sqlite"
)

// DriverName is the database/sql driver used by New.
const DriverName = "sqlite"

const dsnParams = "_pragma=busy_timeout(5000)&_pragma=case_sensitive_like(1)"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction("soundex", 1,
		func(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return soundexValue(args[0]), nil
		})
}
