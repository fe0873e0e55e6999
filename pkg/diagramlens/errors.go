package diagramlens

import (
	"errors"
)

// Sentinel errors for snapshot decoding and lookup.
// The analysis functions themselves never return errors.
var (
	// ErrEmptySnapshot indicates the snapshot input contained no data.
	ErrEmptySnapshot = errors.New("empty snapshot")

	// ErrInvalidSnapshot indicates the snapshot input could not be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrElementNotFound indicates a lookup referenced an unknown element id.
	ErrElementNotFound = errors.New("element not found")
)
