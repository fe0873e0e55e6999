package main

import (
	"github.com/spf13/cobra"
)

func newExplainCmd(a *app) *cobra.Command {
	var topic string
	var deep bool

	cmd := &cobra.Command{
		Use:   "explain <id>",
		Short: "Explain an element with the configured language model",
		Long: `Ask the language model what an element means in the context of the
diagram and its topic. Answers are cached by prompt.

Requires GEMINI_API_KEY (or GOOGLE_API_KEY) unless llm.provider is "mock".

Example:
  diagramlens explain -s board.json box-1 --topic "Photosynthesis"`,
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

			asst, closeStore, err := a.assistant(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer closeStore()

			exp, err := asst.Explain(cmd.Context(), snap, args[0], topic, depthFlag(deep))
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), exp)
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic the diagram explains")
	cmd.Flags().BoolVar(&deep, "deep", false, "Ask for a deep-dive explanation")
	return cmd
}
