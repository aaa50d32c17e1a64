package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/pkg/buildinfo"
)

// Execute runs the planesketch CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (demo,
// inspect, viz, eval, serve, cache), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "planesketch",
		Short:        "Planesketch edits reactive analytic-geometry scenes",
		Long:         `Planesketch is a tool for building and inspecting reactive scenes of points, lines, and conics, where derived entities follow their dependencies through closed-form analytic geometry.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newVizCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root
}
