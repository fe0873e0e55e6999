package main

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens/assistant"
)

func newOrderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Reconstruct the reading order of the diagram",
		Long: `Print the order a reader would follow through the diagram. Arrows bound
to shapes on both ends define the flow; without any, shapes are read
left to right and top to bottom.

Example:
  diagramlens order -s board.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			snap, err := a.snapshot(cmd)
			if err != nil {
				return err
			}

			// Ordering never calls the model.
			asst := assistant.New(nil, assistant.WithSettings(s), assistant.WithLogger(a.logger))
			return outputJSON(cmd.OutOrStdout(), asst.Order(cmd.Context(), snap))
		},
	}
}
