package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <topic>",
		Short: "Generate a Mermaid flowchart for a topic",
		Long: `Ask the language model to draw a topic as a Mermaid flowchart. The
snapshot flag is not needed.

Example:
  diagramlens generate "How DNS resolution works"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}

			asst, closeStore, err := a.assistant(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer closeStore()

			topic := strings.Join(args, " ")
			src, err := asst.GenerateDiagram(cmd.Context(), topic)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), GenerateResponse{Topic: topic, Mermaid: src})
		},
	}
}
