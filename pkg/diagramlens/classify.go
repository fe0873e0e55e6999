package diagramlens

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LabelTextLabel is the label of plain text elements. Descriptors of
// text elements omit it, since the quoted text already says as much.
const LabelTextLabel = "Text Label"

// typeLabels maps known element types to human-readable labels.
var typeLabels = map[ElementType]string{
	TypeRectangle: "Box",
	TypeDiamond:   "Decision Diamond",
	TypeEllipse:   "Oval",
	TypeArrow:     "Connection Arrow",
	TypeLine:      "Connecting Line",
	TypeText:      LabelTextLabel,
	TypeImage:     "Image",
	TypeFreedraw:  "Drawn Shape",
}

// TypeLabel returns the friendly label for t.
// Unknown types fall back to the raw tag with its first letter upper-cased.
func TypeLabel(t ElementType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return capitalize(string(t))
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Describe returns a display descriptor for e.
//
// With text: the quoted trimmed text followed by the type label in
// parentheses, except for plain text elements and untyped ones. Without
// text: the label.
// The boolean is false only when e is nil.
func Describe(e *Element) (string, bool) {
	if e == nil {
		return "", false
	}
	label := TypeLabel(e.Type)
	text := e.Label()
	if text == "" {
		return label, true
	}
	if label == "" || label == LabelTextLabel {
		return `"` + text + `"`, true
	}
	var b strings.Builder
	b.WriteString(`"`)
	b.WriteString(text)
	b.WriteString(`" (`)
	b.WriteString(label)
	b.WriteString(")")
	return b.String(), true
}

// Classification bundles everything the classifier knows about an element.
type Classification struct {
	ID         string      `json:"id"`
	Type       ElementType `json:"type"`
	Label      string      `json:"label"`
	Text       string      `json:"text,omitempty"`
	Descriptor string      `json:"descriptor"`
	Center     Point       `json:"center"`
	Connector  bool        `json:"connector"`
}

// Classify returns the classification of e, or false when e is nil.
func Classify(e *Element) (Classification, bool) {
	desc, ok := Describe(e)
	if !ok {
		return Classification{}, false
	}
	return Classification{
		ID:         e.ID,
		Type:       e.Type,
		Label:      TypeLabel(e.Type),
		Text:       e.Label(),
		Descriptor: desc,
		Center:     e.Center(),
		Connector:  e.IsConnector(),
	}, true
}

// ClassifyAll classifies every element, preserving input order.
func ClassifyAll(elements []Element) []Classification {
	out := make([]Classification, 0, len(elements))
	for i := range elements {
		c, _ := Classify(&elements[i])
		out = append(out, c)
	}
	return out
}
