package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/stranalyzer/internal/version"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	env        string
	configPath string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCommand creates the stranalyzer CLI. Without a subcommand it serves HTTP.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	serve := newServeCommand(opts)
	cmd := &cobra.Command{
		Use:           "stranalyzer",
		Short:         "String analysis service",
		Long:          "Analyzes strings, stores them by content hash and serves filtered queries over HTTP.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", "", "environment name, selects config/<env>.yaml (default $ENV or local)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "explicit config file path (overrides --env lookup)")

	cmd.AddCommand(serve)
	cmd.AddCommand(newAnalyzeCommand())

	return cmd
}
