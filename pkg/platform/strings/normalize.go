// Package strings provides string normalization helpers for user-supplied
// names and labels.
package strings

import (
	"strings"
)

// CollapseSpace trims s and replaces every internal whitespace run with a
// single space.
//
//	CollapseSpace("  Business   Studies ")
//	// Returns: "Business Studies"
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DedupeAndTrim collapses whitespace in each element and drops empties and
// duplicates. Order of first occurrence is preserved; comparison is
// case-sensitive.
//
//	DedupeAndTrim([]string{" Physics", "Physics ", "", "Political  Science"})
//	// Returns: []string{"Physics", "Political Science"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := CollapseSpace(v)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
