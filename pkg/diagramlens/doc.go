/*
Package diagramlens analyzes the semantic graph behind a drawn diagram so
that a language model can be asked about individual elements.

# Overview

A canvas exposes its content as a flat list of elements: boxes, diamonds,
ovals, text labels, images, freehand drawings and connectors (arrows and
lines). diagramlens turns that list into:

  - descriptors: human-readable names for each element
  - neighborhoods: the elements near a focal element, nearest first
  - traversals: an implied reading order over the diagram
  - prompts: diagram-aware requests for a language model

Every function in this package is pure. Inputs are never modified,
nothing is cached, and no function blocks or returns an error for
malformed input; missing fields fall back to zero values instead.

# Basic Usage

	snap, err := diagramlens.DecodeSnapshot(file)
	if err != nil {
	    log.Fatal(err)
	}

	focal, _ := snap.Lookup("box-1")
	ctx := diagramlens.Neighborhood(focal, snap.Elements())
	fmt.Println(ctx.Summary) // Start (Box) — connected/near: "Check input", arrow

	prompt := diagramlens.ShortPrompt(focal, "user signup", ctx.Neighbors)

# Neighborhoods

Distances are measured between bounding-box centers. Only elements
strictly inside the proximity radius (400 canvas units by default) are
neighbors. Ties keep input order, so repeated calls over the same input
return identical results.

	ctx := diagramlens.Neighborhood(focal, elements,
	    diagramlens.WithRadius(250),
	    diagramlens.WithSummaryLimit(3))

# Traversal

Traverse derives edges in tiers:

 1. Connector bindings that resolve to non-connector elements.
 2. If none resolve, a positional chain ordered by x, then y.
 3. A Kahn walk over those edges, with unreachable nodes appended in
    input order.

Every non-connector element appears exactly once in the result, even for
cyclic or disconnected diagrams.

# Subpackages

  - config: file and environment configuration
  - observability: logging, metrics, and tracing helpers
  - llm: language model client interface, Gemini backend, and mock
  - cache: response caches (LRU, SQLite)
  - assistant: ties analysis, language model, and cache together
*/
package diagramlens
