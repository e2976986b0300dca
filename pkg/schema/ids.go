package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	translationCall = regexp.MustCompile(`^(?:__|trans)\(['"](.+?)['"]\)$`)
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// IDFromName derives a snake_case element id from a component name,
// unwrapping translation calls such as __('sections.profile').
func IDFromName(name string) string {
	cleaned := translationCall.ReplaceAllString(strings.TrimSpace(name), "$1")
	snake := strings.ToLower(nonAlphanumeric.ReplaceAllString(cleaned, "_"))
	return strings.Trim(snake, "_")
}

// LabelFromName turns a field name into a display label:
// "billing.first_name" becomes "First name".
func LabelFromName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(name))
	if name == "" {
		return ""
	}
	name = strings.Join(strings.Fields(splitCamel(name)), " ")
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func splitCamel(in string) string {
	var b strings.Builder
	runes := []rune(in)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
