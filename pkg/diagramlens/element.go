package diagramlens

import (
	"encoding/json"
	"math"
	"strings"
)

// ElementType tags a diagram element with its shape kind.
// The vocabulary is open: unknown tags are valid and get a fallback label.
type ElementType string

// Known element types emitted by the canvas.
const (
	TypeRectangle ElementType = "rectangle"
	TypeDiamond   ElementType = "diamond"
	TypeEllipse   ElementType = "ellipse"
	TypeArrow     ElementType = "arrow"
	TypeLine      ElementType = "line"
	TypeText      ElementType = "text"
	TypeImage     ElementType = "image"
	TypeFreedraw  ElementType = "freedraw"
)

// Element is one item of the semantic graph a canvas exposes.
//
// Missing numeric fields are zero. Text that is empty or whitespace-only
// is treated as absent everywhere in this package. ID uniqueness is the
// producer's responsibility and is not re-validated here.
type Element struct {
	ID     string      `json:"id"`
	Type   ElementType `json:"type"`
	Text   string      `json:"text,omitempty"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`

	// StartBinding and EndBinding are only meaningful on connectors.
	StartBinding *Binding `json:"startBinding,omitempty"`
	EndBinding   *Binding `json:"endBinding,omitempty"`
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the geometric center of the element's bounding box.
func (e Element) Center() Point {
	return Point{
		X: e.X + e.Width/2,
		Y: e.Y + e.Height/2,
	}
}

// IsConnector reports whether the element is an arrow or a line.
func (e Element) IsConnector() bool {
	return e.Type == TypeArrow || e.Type == TypeLine
}

// Label returns the trimmed text, or "" when the element has none.
func (e Element) Label() string {
	return strings.TrimSpace(e.Text)
}

// HasText reports whether the element carries non-blank text.
func (e Element) HasText() bool {
	return e.Label() != ""
}

// isBlank reports whether e carries no identity at all.
func (e Element) isBlank() bool {
	return e.ID == "" && e.Type == "" && !e.HasText()
}

// Distance returns the Euclidean distance between the centers of a and b.
func Distance(a, b Element) float64 {
	ca, cb := a.Center(), b.Center()
	return math.Hypot(ca.X-cb.X, ca.Y-cb.Y)
}

// Binding is a connector's advisory reference to the element it touches.
//
// Canvas exports encode a binding either as a bare id string or as an
// object with an "elementId" field; both decode into Binding.
type Binding struct {
	ElementID string `json:"elementId"`
}

// Target returns the referenced element id, or "" for a nil binding.
func (b *Binding) Target() string {
	if b == nil {
		return ""
	}
	return b.ElementID
}

// UnmarshalJSON accepts "id", {"elementId": "id"} and null.
func (b *Binding) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		b.ElementID = id
		return nil
	}
	var obj struct {
		ElementID string `json:"elementId"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	b.ElementID = obj.ElementID
	if b.ElementID == "" {
		b.ElementID = obj.ID
	}
	return nil
}

// NeighborContext describes an element found near a focal element.
// Distance is in canvas units, rounded to the nearest integer.
type NeighborContext struct {
	ID       string      `json:"id"`
	Text     string      `json:"text,omitempty"`
	Type     ElementType `json:"type"`
	Distance int         `json:"distance"`
}

// descriptor returns the quoted text, or the bare type tag when blank.
func (n NeighborContext) descriptor() string {
	if t := strings.TrimSpace(n.Text); t != "" {
		return `"` + t + `"`
	}
	return string(n.Type)
}
