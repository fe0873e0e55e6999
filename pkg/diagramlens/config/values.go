package config

import (
	"strconv"
	"strings"
	"time"
)

// Values wraps a decoded YAML/JSON document for typed extraction.
//
// Keys are dotted paths into nested maps ("llm.model"). Every accessor
// returns defaultVal when the path is missing or the value has the wrong
// type, so callers never type-assert.
type Values struct {
	data map[string]any
}

// NewValues creates Values from the given map.
// If data is nil, an empty Values is returned.
func NewValues(data map[string]any) Values {
	if data == nil {
		data = make(map[string]any)
	}
	return Values{data: data}
}

// lookup walks a dotted path through nested maps.
func (v Values) lookup(path string) (any, bool) {
	var cur any = v.data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path resolves to a value.
func (v Values) Has(path string) bool {
	_, ok := v.lookup(path)
	return ok
}

// String returns the string at path, or defaultVal.
func (v Values) String(path, defaultVal string) string {
	raw, ok := v.lookup(path)
	if !ok {
		return defaultVal
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean at path, or defaultVal.
func (v Values) Bool(path string, defaultVal bool) bool {
	raw, ok := v.lookup(path)
	if !ok {
		return defaultVal
	}
	if b, ok := raw.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer at path, or defaultVal.
//
// Accepts int, int64, float64 without a fractional part (JSON numbers),
// and numeric strings (environment overrides).
func (v Values) Int(path string, defaultVal int) int {
	raw, ok := v.lookup(path)
	if !ok {
		return defaultVal
	}
	switch val := raw.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultVal
}

// Float returns the float64 at path, or defaultVal.
//
// Accepts float64, int, int64 and numeric strings.
func (v Values) Float(path string, defaultVal float64) float64 {
	raw, ok := v.lookup(path)
	if !ok {
		return defaultVal
	}
	switch val := raw.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// Duration returns the duration at path, or defaultVal.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int, int64, float64: interpreted as seconds
func (v Values) Duration(path string, defaultVal time.Duration) time.Duration {
	raw, ok := v.lookup(path)
	if !ok {
		return defaultVal
	}
	switch val := raw.(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	}
	return defaultVal
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (v Values) Raw() map[string]any {
	return v.data
}
