package main

import (
	"errors"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
)

// Exit codes for the diagramlens CLI.
const (
	ExitSuccess     = 0
	ExitError       = 1 // General error
	ExitConfigError = 2 // Invalid configuration or credentials
	ExitInputError  = 3 // Unreadable snapshot or unknown element
)

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrInvalidSetting),
		errors.Is(err, config.ErrUnsupportedFormat),
		errors.Is(err, llm.ErrMissingAPIKey):
		return ExitConfigError
	case errors.Is(err, diagramlens.ErrElementNotFound),
		errors.Is(err, diagramlens.ErrEmptySnapshot),
		errors.Is(err, diagramlens.ErrInvalidSnapshot),
		errors.Is(err, errSnapshotRequired):
		return ExitInputError
	default:
		return ExitError
	}
}
