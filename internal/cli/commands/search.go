package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ministore/searchable/internal/cliutil"
	"github.com/ministore/searchable/searchable"
	"github.com/ministore/searchable/searchable/storage/sqlbuilder"
)

type mode func(s *searchable.Searcher, ctx context.Context, term string, opts ...searchable.Option) (sqlbuilder.Expr, error)

type modeFlags struct {
	table       string
	fields      string
	ci          bool
	keywords    bool
	relations   string
	maxDistance int
}

func (f *modeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.table, "table", "t", "", "table to search (required)")
	cmd.Flags().StringVar(&f.fields, "fields", "", "comma-separated fields (default: the profile's fields)")
	_ = cmd.MarkFlagRequired("table")
}

func (f *modeFlags) bindCaseInsensitive(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.ci, "ignore-case", "i", false, "case-insensitive matching")
}

func (f *modeFlags) options() []searchable.Option {
	opts := []searchable.Option{searchable.CaseInsensitive(f.ci), searchable.ByKeywords(f.keywords)}
	if fields := cliutil.SplitList(f.fields); len(fields) > 0 {
		opts = append(opts, searchable.Fields(fields...))
	}
	return opts
}

// runMode builds the predicate of m for the joined args and emits the
// resulting SELECT.
func runMode(env *Env, f *modeFlags, m mode, extra func(*session) ([]searchable.Option, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := env.open(ctx, f.table)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := f.options()
		if extra != nil {
			more, err := extra(s)
			if err != nil {
				return err
			}
			opts = append(opts, more...)
		}
		pred, err := m(s.searcher, ctx, strings.Join(args, " "), opts...)
		if err != nil {
			return err
		}
		sel := s.selectStmt(env.Global.Limit)
		searchable.Apply(sel, pred)
		return env.emit(ctx, s, sel)
	}
}

func NewSearchCmd(env *Env) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Rows where any field contains the term",
		Args:  cobra.MinimumNArgs(1),
	}
	f.bind(cmd)
	f.bindCaseInsensitive(cmd)
	cmd.RunE = runMode(env, f, (*searchable.Searcher).Search, nil)
	return cmd
}

func NewExactCmd(env *Env) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   "exact <term>",
		Short: "Rows where any field equals the term",
		Args:  cobra.MinimumNArgs(1),
	}
	f.bind(cmd)
	cmd.RunE = runMode(env, f, (*searchable.Searcher).ExactMatch, nil)
	return cmd
}

func NewKeywordsCmd(env *Env) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   "keywords <term>",
		Short: "Rows where any field contains any whitespace-separated keyword",
		Args:  cobra.MinimumNArgs(1),
	}
	f.bind(cmd)
	f.bindCaseInsensitive(cmd)
	cmd.RunE = runMode(env, f, (*searchable.Searcher).KeywordSearch, nil)
	return cmd
}

func NewAcrossCmd(env *Env) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   "across <term>",
		Short: "Rows matching on their own fields or on a related row's fields",
		Args:  cobra.MinimumNArgs(1),
	}
	f.bind(cmd)
	f.bindCaseInsensitive(cmd)
	cmd.Flags().BoolVarP(&f.keywords, "keywords", "k", false, "split the term into keywords for the table's own fields")
	cmd.Flags().StringVarP(&f.relations, "relations", "r", "", "comma-separated profile relations (default: all)")
	cmd.RunE = runMode(env, f, (*searchable.Searcher).SearchAcross, func(s *session) ([]searchable.Option, error) {
		rels, err := relationOptions(s.profile, cliutil.SplitList(f.relations))
		if err != nil {
			return nil, err
		}
		return []searchable.Option{searchable.Relations(rels...)}, nil
	})
	return cmd
}

func NewFuzzyCmd(env *Env) *cobra.Command {
	f := &modeFlags{}
	cmd := &cobra.Command{
		Use:   "fuzzy <term>",
		Short: "Rows approximately matching the term",
		Long: `Rows approximately matching the term.

On postgres with the fuzzystrmatch extension, fields within --max-distance
edits of the term match. Postgres without it falls back to case-insensitive
substring matching; other backends match substrings or equal SOUNDEX codes.`,
		Args: cobra.MinimumNArgs(1),
	}
	f.bind(cmd)
	cmd.Flags().IntVarP(&f.maxDistance, "max-distance", "d", searchable.DefaultMaxDistance, "maximum edit distance (inclusive)")
	cmd.RunE = runMode(env, f, (*searchable.Searcher).FuzzySearch, func(*session) ([]searchable.Option, error) {
		return []searchable.Option{searchable.MaxDistance(f.maxDistance)}, nil
	})
	return cmd
}
