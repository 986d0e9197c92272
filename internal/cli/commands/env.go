package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ministore/searchable/internal/cliopt"
	"github.com/ministore/searchable/internal/cliutil"
	"github.com/ministore/searchable/searchable"
	"github.com/ministore/searchable/searchable/planner"
	"github.com/ministore/searchable/searchable/storage"
	"github.com/ministore/searchable/searchable/storage/mysql"
	"github.com/ministore/searchable/searchable/storage/postgres"
	"github.com/ministore/searchable/searchable/storage/sqlite"
)

// Env is the state shared by every subcommand.
type Env struct {
	Global *cliopt.GlobalOptions
	Out    io.Writer
	Err    io.Writer
}

func (e *Env) logger() *slog.Logger {
	level := slog.LevelWarn
	if e.Global.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(e.Err, &slog.HandlerOptions{Level: level}))
}

// openBackend connects to the backend named by --backend.
func openBackend(ctx context.Context, g cliopt.GlobalOptions) (storage.Connection, *sql.DB, error) {
	dsn := cliutil.ResolveDSN(g)
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		c, err := postgres.New(dsn, g.Schema).Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, c.DB, nil
	case "mysql", "mariadb":
		c, err := mysql.New(dsn).Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, c.DB, nil
	case "sqlite", "sqlite3", "":
		c, err := sqlite.New(dsn).Connect(ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, c.DB, nil
	default:
		return nil, nil, errors.Newf("unknown backend %q (want sqlite|postgres|mysql)", g.Backend)
	}
}

type session struct {
	conn     storage.Connection
	db       *sql.DB
	searcher *searchable.Searcher
	table    string
	profile  cliopt.TableProfile
	log      *slog.Logger
}

func (e *Env) open(ctx context.Context, table string) (*session, error) {
	prof, err := cliopt.LoadProfile(e.Global.Config)
	if err != nil {
		return nil, err
	}
	tp := prof.Table(table)
	conn, db, err := openBackend(ctx, *e.Global)
	if err != nil {
		return nil, err
	}
	log := e.logger()
	log.DebugContext(ctx, "connected", "backend", e.Global.Backend, "table", table)
	s := searchable.New(conn,
		searchable.WithDefaults(searchable.FieldList(tp.Fields)),
		searchable.WithLogger(log),
	)
	return &session{conn: conn, db: db, searcher: s, table: table, profile: tp, log: log}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// selectStmt starts a SELECT over the session table with every profile
// relation registered.
func (s *session) selectStmt(limit int) *planner.Select {
	sel := planner.NewSelect(s.table)
	sel.Limit = limit
	for name, r := range s.profile.Relations {
		sel.Relate(name, planner.Relation{Table: r.Table, ForeignKey: r.ForeignKey, OwnerKey: r.OwnerKey})
	}
	return sel
}

type result struct {
	SQL       string           `json:"sql"`
	Args      []any            `json:"args"`
	Columns   []string         `json:"columns,omitempty"`
	Rows      []map[string]any `json:"rows,omitempty"`
	ElapsedMS int64            `json:"elapsed_ms,omitempty"`
}

// emit renders sel, optionally runs it, and prints the outcome.
func (e *Env) emit(ctx context.Context, s *session, sel *planner.Select) error {
	query, args, err := sel.Build(s.conn)
	if err != nil {
		return err
	}
	if args == nil {
		args = []any{}
	}
	res := result{SQL: query, Args: args}
	if e.Global.Run {
		start := time.Now()
		res.Columns, res.Rows, err = queryRows(ctx, s.db, query, args)
		if err != nil {
			return err
		}
		res.ElapsedMS = time.Since(start).Milliseconds()
		s.log.DebugContext(ctx, "query executed", "rows", len(res.Rows), "elapsed_ms", res.ElapsedMS)
	}
	printResult(e.Out, cliutil.ParseOutputFormat(e.Global.Format, e.Out), res, e.Global.Run)
	return nil
}

func queryRows(ctx context.Context, db *sql.DB, query string, args []any) ([]string, []map[string]any, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "run query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, errors.Wrap(err, "columns")
	}
	out := make([]map[string]any, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, errors.Wrap(err, "scan row")
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "iterate rows")
	}
	return cols, out, nil
}

func printResult(w io.Writer, format cliutil.OutputFormat, res result, ran bool) {
	switch format {
	case cliutil.FormatJSON:
		cliutil.PrintJSON(w, res)
	case cliutil.FormatSQL:
		fmt.Fprintf(w, "%s;\n", res.SQL)
		if len(res.Args) > 0 {
			fmt.Fprintf(w, "-- args: %v\n", res.Args)
		}
	default:
		fmt.Fprintf(w, "=== SQL ===\n%s\n", res.SQL)
		if len(res.Args) > 0 {
			fmt.Fprintf(w, "\nArgs: %v\n", res.Args)
		}
		if !ran {
			return
		}
		fmt.Fprintf(w, "\nFound %d rows in %dms\n", len(res.Rows), res.ElapsedMS)
		for _, row := range res.Rows {
			parts := make([]string, 0, len(res.Columns))
			for _, c := range res.Columns {
				parts = append(parts, fmt.Sprintf("%s=%v", c, row[c]))
			}
			fmt.Fprintf(w, "- %s\n", strings.Join(parts, " "))
		}
	}
}

// relationOptions maps relation names to searchable relations using the
// profile's field lists. No names means every profile relation.
func relationOptions(tp cliopt.TableProfile, names []string) ([]searchable.Relation, error) {
	if len(names) == 0 {
		names = tp.RelationNames()
	}
	out := make([]searchable.Relation, 0, len(names))
	for _, name := range names {
		r, ok := tp.Relations[name]
		if !ok {
			return nil, errors.Newf("relation %q is not in the profile (known: %s)", name, strings.Join(tp.RelationNames(), ", "))
		}
		out = append(out, searchable.Relation{Name: name, Fields: r.Fields})
	}
	return out, nil
}
