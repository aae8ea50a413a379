package cli

import (
	"bufio"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amadrinan/quiz/internal/engine"
	"github.com/amadrinan/quiz/internal/render"
)

// runREPL drives one interactive session over the standard streams.
// The process exits when the user quits or stdin closes.
func runREPL(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	st, err := cfg.OpenStore()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	// color.NoColor already accounts for non-TTY stdout.
	out := render.New(cmd.OutOrStdout(), !color.NoColor)
	eng := engine.New(st, out)
	eng.Greet()

	ctx := cmd.Context()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		action, err := eng.Feed(ctx, scanner.Text())
		if err != nil {
			// The store can no longer be trusted: fatal to the process.
			return WrapExitError(ExitFailure, "store failure", err)
		}
		if action == engine.ActionQuit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitFailure, "input stream failed", err)
	}

	// EOF on stdin ends the session the same way quit does.
	out.Log("Goodbye, come back soon!")
	return nil
}
