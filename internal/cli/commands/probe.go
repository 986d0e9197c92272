package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ministore/searchable/internal/cliutil"
)

func NewProbeCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report the backend dialect and fuzzy-search capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := env.open(ctx, "")
			if err != nil {
				return err
			}
			defer s.Close()

			caps, err := s.searcher.Capabilities(ctx)
			if err != nil {
				return err
			}
			switch cliutil.ParseOutputFormat(env.Global.Format, env.Out) {
			case cliutil.FormatJSON:
				cliutil.PrintJSON(env.Out, caps)
			default:
				fuzzy := "substring or SOUNDEX"
				switch {
				case caps.ExtendedDistance:
					fuzzy = "levenshtein"
				case caps.Dialect == "postgres":
					fuzzy = "case-insensitive substring (install fuzzystrmatch for levenshtein)"
				}
				fmt.Fprintf(env.Out, "Dialect: %s\n", caps.Dialect)
				fmt.Fprintf(env.Out, "Fuzzy search: %s\n", fuzzy)
			}
			return nil
		},
	}
}
