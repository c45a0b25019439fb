package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *CLI) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive consent dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, shutdown, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = shutdown(context.Background()) }()
			defer func() { _ = a.Close(context.Background()) }()
			return a.RunDashboard(cmd.Context())
		},
	}
}
