package strcase

import (
	"strings"
	"unicode"
)

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// ToLowerCamel converts snake_case, kebab-case or PascalCase to lowerCamelCase.
func ToLowerCamel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	b.WriteString(lowerLeading(words[0]))
	for _, w := range words[1:] {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}

// lowerLeading lowers the leading upper-case run of w, leaving the last rune
// of an acronym upper-case when it starts the next word (HTTPServer -> httpServer).
func lowerLeading(w string) string {
	runes := []rune(w)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// CamelKeys returns a copy of v with every object key converted by ToLowerCamel.
// Maps nested inside maps and slices are converted too; other values are shared.
func CamelKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[ToLowerCamel(k)] = CamelKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CamelKeys(val)
		}
		return out
	default:
		return v
	}
}
