// Package vars implements {{name}} placeholder substitution for request
// templates. Resolution is flat: substituted values are never re-scanned for
// further placeholders.
package vars

import (
	"encoding/json"
	"regexp"
	"strings"
)

// varPattern matches {{VAR_NAME}}, non-greedy between the first {{ and the
// next }}.
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Resolve replaces every {{name}} occurrence in text with vars[name].
// Surrounding whitespace in the name is ignored. Placeholders whose name is
// absent from vars are left verbatim.
func Resolve(text string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		name = strings.TrimSpace(name)

		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})
}

// ResolveJSON resolves placeholders in text and then attempts to parse the
// result as JSON. On parse failure the resolved string is returned as-is, so
// callers must handle either shape.
func ResolveJSON(text string, vars map[string]string) interface{} {
	resolved := Resolve(text, vars)
	var parsed interface{}
	if err := json.Unmarshal([]byte(resolved), &parsed); err != nil {
		return resolved
	}
	return parsed
}

// Names extracts the unique placeholder names present in text, in order of
// first occurrence.
func Names(text string) []string {
	matches := varPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Merge overlays the given maps left to right; later maps win. Nil maps are
// skipped.
func Merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
