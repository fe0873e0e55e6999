package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
)

func newPromptCmd(a *app) *cobra.Command {
	var topic string
	var deep bool

	cmd := &cobra.Command{
		Use:   "prompt <id>",
		Short: "Print the model prompt for an element without sending it",
		Long: `Build the explanation prompt for an element exactly as explain would,
and print it instead of calling the model.

Example:
  diagramlens prompt -s board.json box-1 --topic "Photosynthesis" --deep`,
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

			focal, ok := snap.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", diagramlens.ErrElementNotFound, args[0])
			}
			opts := s.Options()
			nctx := diagramlens.Neighborhood(focal, snap.Elements(), opts...)
			depth := depthFlag(deep)

			return outputJSON(cmd.OutOrStdout(), PromptResponse{
				ElementID: focal.ID,
				Depth:     string(depth),
				Prompt:    diagramlens.BuildPrompt(depth, focal, topic, nctx.Neighbors, opts...),
			})
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic the diagram explains")
	cmd.Flags().BoolVar(&deep, "deep", false, "Build the deep-dive prompt")
	return cmd
}

func depthFlag(deep bool) diagramlens.Depth {
	if deep {
		return diagramlens.DepthDeep
	}
	return diagramlens.DepthShort
}
