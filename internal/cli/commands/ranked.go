package commands

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ministore/searchable/internal/cliutil"
	"github.com/ministore/searchable/searchable"
)

func NewRankedCmd(env *Env) *cobra.Command {
	var table, weights string
	cmd := &cobra.Command{
		Use:   "ranked <term>",
		Short: "Matching rows ordered by the summed weights of the fields that contain the term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := env.open(ctx, table)
			if err != nil {
				return err
			}
			defer s.Close()

			w := searchable.WeightsFromMap(s.profile.Weights)
			if weights != "" {
				if w, err = ParseWeights(weights); err != nil {
					return err
				}
			}
			ranked, err := s.searcher.RankedSearch(ctx, strings.Join(args, " "), w)
			if err != nil {
				return err
			}
			sel := s.selectStmt(env.Global.Limit)
			ranked.Apply(sel)
			return env.emit(ctx, s, sel)
		},
	}
	cmd.Flags().StringVarP(&table, "table", "t", "", "table to search (required)")
	cmd.Flags().StringVarP(&weights, "weights", "w", "", "field=weight pairs, e.g. name=2,email=1 (default: the profile's weights)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

// ParseWeights parses "field=weight,..." keeping the given order.
func ParseWeights(s string) (searchable.Weights, error) {
	var out searchable.Weights
	for _, pair := range cliutil.SplitList(s) {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.Newf("invalid weight %q (expected field=weight)", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "weight of %s", field)
		}
		out = append(out, searchable.Weight{Field: strings.TrimSpace(field), Value: v})
	}
	return out, nil
}
