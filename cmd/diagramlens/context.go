package main

import (
	"github.com/spf13/cobra"
)

func newContextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "context <id>",
		Short: "Show the elements near one element",
		Long: `Print the neighborhood of an element: a one-line summary and every
element whose center lies within the configured radius, nearest first.

Example:
  diagramlens context -s board.json box-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			snap, err := a.snapshot(cmd)
			if err != nil {
				return err
			}

			nctx, err := snap.Neighborhood(args[0], s.Options()...)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), nctx)
		},
	}
}
