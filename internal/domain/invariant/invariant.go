// Package invariant holds the pure boolean predicates encoding individual
// business rules. Each predicate is total over well-typed input, has no side
// effects, and is unit-testable without constructing commands or events.
// Derivers compose these predicates in a fixed, documented order and report
// the first failing rule.
package invariant

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// hexColorPattern matches a #rrggbb color value, case-insensitive.
var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NameProvided reports whether name contains any non-whitespace character.
func NameProvided(name string) bool {
	return strings.TrimSpace(name) != ""
}

// NameWithinLimit reports whether the trimmed name is at most limit runes.
// The bound is inclusive: a name of exactly limit runes passes.
func NameWithinLimit(name string, limit int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) <= limit
}

// NameUnique reports whether name collides with none of existing, compared
// case-insensitively on the trimmed forms.
func NameUnique(name string, existing []string) bool {
	folded := strings.ToLower(strings.TrimSpace(name))
	for _, other := range existing {
		if strings.ToLower(strings.TrimSpace(other)) == folded {
			return false
		}
	}
	return true
}

// ColorWellFormed reports whether color is a #rrggbb hex value.
func ColorWellFormed(color string) bool {
	return hexColorPattern.MatchString(color)
}

// IDExists reports whether id is present in the known set.
func IDExists(id int64, known map[int64]bool) bool {
	return known[id]
}

// SpanValid reports whether [start, end) is a well-ordered, non-negative,
// non-empty span.
func SpanValid(start, end int) bool {
	return start >= 0 && start < end
}
