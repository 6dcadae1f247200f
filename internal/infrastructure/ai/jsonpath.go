package ai

import (
	"fmt"
	"strconv"
)

// extractJSONPath extracts a string value from a nested JSON structure using a simple path notation.
// Supported paths: "field", "field.nested", "field[0]", "field[0].nested.field"
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	var current interface{} = data

	for _, part := range parseJSONPath(path) {
		switch part.kind {
		case "field":
			obj, ok := current.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("expected object at '%s'", part.value)
			}
			var found bool
			current, found = obj[part.value]
			if !found {
				return "", fmt.Errorf("field '%s' not found", part.value)
			}

		case "index":
			arr, ok := current.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array at index %s", part.value)
			}
			idx, err := strconv.Atoi(part.value)
			if err != nil {
				return "", fmt.Errorf("invalid index %q", part.value)
			}
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d)", idx, len(arr))
			}
			current = arr[idx]
		}
	}

	if str, ok := current.(string); ok {
		return str, nil
	}
	return "", fmt.Errorf("final value is not a string: %T", current)
}

type pathPart struct {
	kind  string // "field" or "index"
	value string
}

// parseJSONPath converts "candidates[0].content" into structured path parts.
func parseJSONPath(path string) []pathPart {
	var parts []pathPart
	current := ""

	for i := 0; i < len(path); i++ {
		switch ch := path[i]; ch {
		case '.':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
		case '[':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, pathPart{kind: "index", value: path[i+1 : j]})
				i = j
			}
		default:
			current += string(ch)
		}
	}

	if current != "" {
		parts = append(parts, pathPart{kind: "field", value: current})
	}
	return parts
}
