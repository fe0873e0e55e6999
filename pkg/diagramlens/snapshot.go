package diagramlens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// Snapshot is a read-only view of one canvas export.
//
// It owns a private copy of the elements and an id index built once at
// construction. Snapshot is safe for concurrent use.
type Snapshot struct {
	elements []Element
	index    map[string]int
}

// NewSnapshot builds a snapshot over a copy of elements.
//
// Duplicate ids violate the producer's contract; the first occurrence
// wins for Lookup and a warning is logged.
func NewSnapshot(elements []Element) *Snapshot {
	s := &Snapshot{
		elements: slices.Clone(elements),
		index:    make(map[string]int, len(elements)),
	}
	for i, el := range s.elements {
		if _, dup := s.index[el.ID]; dup {
			slog.Warn("duplicate element id in snapshot", "element_id", el.ID)
			continue
		}
		s.index[el.ID] = i
	}
	return s
}

// rawElement mirrors the canvas export record. Only the fields this
// package reads are declared; everything else is ignored.
type rawElement struct {
	Element
	IsDeleted bool `json:"isDeleted"`
}

// DecodeSnapshot reads a canvas export from r.
//
// Accepted shapes are a bare JSON array of elements and an object with an
// "elements" array. Elements marked isDeleted are dropped.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptySnapshot
	}

	var raw []rawElement
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	case '{':
		var envelope struct {
			Elements []rawElement `json:"elements"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		raw = envelope.Elements
	default:
		return nil, fmt.Errorf("%w: expected JSON array or object", ErrInvalidSnapshot)
	}

	elements := make([]Element, 0, len(raw))
	for _, re := range raw {
		if re.IsDeleted {
			continue
		}
		elements = append(elements, re.Element)
	}
	return NewSnapshot(elements), nil
}

// Len returns the number of elements.
func (s *Snapshot) Len() int {
	return len(s.elements)
}

// Elements returns a copy of the elements in input order.
func (s *Snapshot) Elements() []Element {
	return slices.Clone(s.elements)
}

// Lookup returns a copy of the element with the given id.
func (s *Snapshot) Lookup(id string) (*Element, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	el := s.elements[i]
	return &el, true
}

// Neighborhood runs Neighborhood for the element with the given id.
func (s *Snapshot) Neighborhood(id string, opts ...Option) (Context, error) {
	focal, ok := s.Lookup(id)
	if !ok {
		return Context{}, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return Neighborhood(focal, s.elements, opts...), nil
}

// Traverse runs Traverse over the snapshot.
func (s *Snapshot) Traverse() Traversal {
	return Traverse(s.elements)
}
