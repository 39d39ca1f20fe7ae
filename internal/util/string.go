package util

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace squeezes every run of whitespace (spaces, tabs,
// newlines) down to a single space and trims the ends. Wiki cells are full
// of layout whitespace that carries no meaning.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// StripTabs removes tab characters but keeps the rest of the text as-is.
// Used for time-range cells where newlines still separate the halves.
func StripTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "")
}
