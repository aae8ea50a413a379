// Package cli wires the quiz commands: an interactive REPL on the
// standard streams and a multi-session TCP server.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amadrinan/quiz/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string
}

// NewRootCommand creates the root command for the quiz CLI.
// Running it without a subcommand starts the interactive session.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Interactive quiz over question/answer pairs",
		Long: `An interactive quiz tool: list, inspect, add, edit, delete and answer
question/answer pairs, or play a full randomized round. The serve
subcommand exposes the same interpreter to concurrent TCP clients.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")

	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// configureLogging follows the verbose flag: Info by default, Debug
// when lifted. Logs go to stderr so session output stays clean.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the configuration for a command run.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}
