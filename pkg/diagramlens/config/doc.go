/*
Package config loads diagramlens settings from YAML/JSON files and the
environment.

# Overview

Values wraps a decoded document and extracts typed values by dotted
path, returning defaults for missing keys or type mismatches:

	v, err := config.FromFile("diagramlens.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	radius := v.Float("radius", 400)
	model := v.String("llm.model", "gemini-2.0-flash")

Settings is the resolved, validated configuration:

	s, err := config.Load("diagramlens.yaml")
	ctx := diagramlens.Neighborhood(focal, elements, s.Options()...)

# File Format

	radius: 400
	summary_limit: 4
	short_limit: 4
	deep_limit: 6
	llm:
	  provider: gemini
	  model: gemini-2.0-flash
	  timeout: 60s
	  max_attempts: 3
	cache:
	  backend: memory   # memory | sqlite | none
	  size: 256
	  path: diagramlens.db

# Environment

DIAGRAMLENS_RADIUS, DIAGRAMLENS_MODEL, DIAGRAMLENS_PROVIDER and
DIAGRAMLENS_CACHE override the file. The API key comes from llm.api_key,
then GEMINI_API_KEY, then GOOGLE_API_KEY.
*/
package config
