package diagramlens

import (
	"fmt"
	"strings"
)

// Depth selects the prompt variant.
type Depth string

const (
	// DepthShort asks for a two to three sentence explanation.
	DepthShort Depth = "short"

	// DepthDeep asks for a structured deep dive with examples and a mnemonic.
	DepthDeep Depth = "deep"
)

// ParseDepth maps "short"/"deep" (and "" to short). Unknown values are
// reported with ok=false.
func ParseDepth(s string) (Depth, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DepthShort):
		return DepthShort, true
	case string(DepthDeep):
		return DepthDeep, true
	}
	return DepthShort, false
}

const (
	placeholderNode  = "this node"
	placeholderTopic = "this diagram"
)

// BuildPrompt dispatches to ShortPrompt or DeepPrompt.
func BuildPrompt(depth Depth, focal *Element, topic string, neighbors []NeighborContext, opts ...Option) string {
	if depth == DepthDeep {
		return DeepPrompt(focal, topic, neighbors, opts...)
	}
	return ShortPrompt(focal, topic, neighbors, opts...)
}

// ShortPrompt builds the request for a short, diagram-specific explanation
// of focal. At most the short limit of neighbors is listed.
func ShortPrompt(focal *Element, topic string, neighbors []NeighborContext, opts ...Option) string {
	o := buildOptions(opts)

	var b strings.Builder
	writeContext(&b, focal, topic, neighbors, o.shortLimit)
	b.WriteString("\nExplain this element in 2-3 sentences, specific to this diagram. ")
	b.WriteString(openingRule)
	b.WriteString(" Start directly with its function or purpose, then describe how it connects to the nearby elements, then why it matters for the topic.")
	return b.String()
}

// DeepPrompt builds the request for a deep-dive explanation of focal.
// At most the deep limit of neighbors is listed.
func DeepPrompt(focal *Element, topic string, neighbors []NeighborContext, opts ...Option) string {
	o := buildOptions(opts)

	var b strings.Builder
	writeContext(&b, focal, topic, neighbors, o.deepLimit)
	b.WriteString("\nGive a deep-dive explanation of this element for someone studying the topic. Provide:\n")
	b.WriteString("1. Its function and role within this diagram.\n")
	b.WriteString("2. Two concrete examples that are specific to this diagram.\n")
	b.WriteString("3. One mnemonic that helps remember it.\n")
	b.WriteString("Use short paragraphs and bullet points. ")
	b.WriteString(openingRule)
	b.WriteString(" Start directly with what it does.")
	return b.String()
}

const openingRule = `Do not open with a generic shape label such as "This element", "This box", "This shape" or a bare shape name.`

// writeContext writes the topic, focal and neighbor lines shared by both
// prompt variants. The neighbor line is omitted when there are none.
func writeContext(b *strings.Builder, focal *Element, topic string, neighbors []NeighborContext, limit int) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = placeholderTopic
	}
	fmt.Fprintf(b, "Topic: %s\n", topic)
	fmt.Fprintf(b, "Selected element: %s\n", focalDescriptor(focal))
	if len(neighbors) > 0 {
		fmt.Fprintf(b, "Nearby elements: %s\n", joinDescriptors(neighbors, limit))
	}
}

// focalDescriptor describes focal for a prompt. Elements without text are
// named by a placeholder plus their type label, so the model is never
// handed an empty subject.
func focalDescriptor(focal *Element) string {
	if focal == nil {
		return placeholderNode
	}
	if !focal.HasText() {
		if label := TypeLabel(focal.Type); label != "" {
			return placeholderNode + " (" + label + ")"
		}
		return placeholderNode
	}
	desc, _ := Describe(focal)
	return desc
}

// DiagramPrompt builds the request that asks a model to draw topic as a
// Mermaid flowchart.
func DiagramPrompt(topic string) string {
	topic = strings.TrimSpace(topic)
	var b strings.Builder
	fmt.Fprintf(&b, "Create a Mermaid flowchart that explains: %s\n", topic)
	b.WriteString("Rules:\n")
	b.WriteString("- Start with \"flowchart TD\".\n")
	b.WriteString("- Use between 5 and 12 nodes with short, descriptive labels.\n")
	b.WriteString("- Use rectangles for steps, diamonds for decisions and rounded nodes for start and end.\n")
	b.WriteString("- Label edges only where the relationship is not obvious.\n")
	b.WriteString("- Return only the Mermaid source, without commentary.")
	return b.String()
}
