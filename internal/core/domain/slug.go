package domain

import (
	"regexp"
	"strings"
)

var (
	slugSpaces   = regexp.MustCompile(`[\s\p{Z}]+`)
	slugDisallow = regexp.MustCompile(`[^\w\x{0980}-\x{09FF}-]+`)
	slugRepeated = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// whitespace runs become a hyphen, anything outside [A-Za-z0-9_], the Bengali
// block and hyphens is dropped, hyphen runs collapse and edge hyphens are
// trimmed. Slugify(Slugify(s)) == Slugify(s).
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDisallow.ReplaceAllString(s, "")
	s = slugRepeated.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
