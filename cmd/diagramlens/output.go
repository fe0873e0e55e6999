package main

import (
	"encoding/json"
	"io"
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PromptResponse is the output of the prompt command.
type PromptResponse struct {
	ElementID string `json:"element_id"`
	Depth     string `json:"depth"`
	Prompt    string `json:"prompt"`
}

// GenerateResponse is the output of the generate command.
type GenerateResponse struct {
	Topic   string `json:"topic"`
	Mermaid string `json:"mermaid"`
}
