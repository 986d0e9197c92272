package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ministore/searchable/internal/cli/commands"
	"github.com/ministore/searchable/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(argv)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := cliopt.DefaultGlobalOptions()
	env := &commands.Env{Global: &g, Out: stdout, Err: stderr}

	root := &cobra.Command{
		Use:           "searchable",
		Short:         "Dialect-aware SQL search predicates",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	cliopt.BindGlobalFlags(root, &g)

	root.AddCommand(
		commands.NewSearchCmd(env),
		commands.NewExactCmd(env),
		commands.NewKeywordsCmd(env),
		commands.NewAcrossCmd(env),
		commands.NewFuzzyCmd(env),
		commands.NewRankedCmd(env),
		commands.NewProbeCmd(env),
	)
	return root
}
