package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *CLI) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk the consent lifecycle end to end without the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, shutdown, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = shutdown(context.Background()) }()
			defer func() { _ = a.Close(context.Background()) }()
			return a.RunDemo(cmd.Context())
		},
	}
}
