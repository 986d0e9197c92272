package cliopt

import "github.com/spf13/cobra"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Config  string
	Backend string
	DSN     string
	Schema  string

	Format  string
	Verbose bool
	Limit   int
	Run     bool
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend: "sqlite",
		DSN:     "searchable.db",
		Limit:   20,
	}
}

func BindGlobalFlags(cmd *cobra.Command, g *GlobalOptions) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&g.Config, "config", g.Config, "YAML profile with per-table fields, weights and relations")
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres|mysql")
	fs.StringVar(&g.DSN, "dsn", g.DSN, "sqlite file path, postgres DSN or mysql DSN")
	fs.StringVar(&g.Schema, "schema-name", g.Schema, "postgres schema pinned first on search_path")

	fs.StringVarP(&g.Format, "format", "f", g.Format, "output: pretty|json|sql (default pretty on a terminal, json otherwise)")
	fs.BoolVarP(&g.Verbose, "verbose", "v", g.Verbose, "debug logging on stderr")
	fs.IntVar(&g.Limit, "limit", g.Limit, "row limit of the generated SELECT (0 = none)")
	fs.BoolVar(&g.Run, "run", g.Run, "execute the generated SELECT and print the rows")
}
