package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [id]",
		Short: "Classify every element, or one element by ID",
		Long: `Print the classification of the elements in the snapshot: type label,
display descriptor, center point and whether the element is a connector.

Example:
  diagramlens describe -s board.json
  diagramlens describe -s board.json box-1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return outputJSON(cmd.OutOrStdout(), diagramlens.ClassifyAll(snap.Elements()))
			}

			el, ok := snap.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", diagramlens.ErrElementNotFound, args[0])
			}
			c, _ := diagramlens.Classify(el)
			return outputJSON(cmd.OutOrStdout(), c)
		},
	}
}
