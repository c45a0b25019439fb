// Package commands implements the CLI commands for the veri consent dashboard.
package commands

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.trai.ch/veri/internal/adapters/config"
	"go.trai.ch/veri/internal/adapters/logger"
	"go.trai.ch/veri/internal/adapters/telemetry"
	"go.trai.ch/veri/internal/app"
	"go.trai.ch/veri/internal/build"
	"go.trai.ch/veri/internal/core/ports"
)

// CLI represents the command line interface for veri.
type CLI struct {
	rootCmd *cobra.Command
}

// New creates a new CLI instance.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "veri",
		Short:         "Identity and consent dashboard over a simulated ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "veri.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("trace", false, "Emit OpenTelemetry spans instead of no-op tracing")

	c := &CLI{rootCmd: rootCmd}

	rootCmd.AddCommand(c.newDashboardCmd())
	rootCmd.AddCommand(c.newDemoCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// newApp loads configuration from the command's flags and assembles an app
// around it. The caller owns the returned app and must Close it; the second
// return value tears down the tracer provider, if one was started.
func (c *CLI) newApp(cmd *cobra.Command) (*app.App, func(context.Context) error, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New()

	var tracer ports.Tracer = telemetry.NewNoOpTracer()
	shutdown := func(context.Context) error { return nil }
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		shutdown = telemetry.Setup(log)
		tracer = telemetry.NewOTelTracer("veri")
	}

	return app.New(cmd.Context(), cfg, log, tracer, clockwork.NewRealClock()), shutdown, nil
}
