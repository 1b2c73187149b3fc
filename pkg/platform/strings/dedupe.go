// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// Dedupe removes duplicates and empty strings from a slice. Elements are
// compared byte for byte; order of first occurrence is preserved.
//
// Example:
//
//	Dedupe([]string{"b", "a", "", "b", " a"})
//	// Returns: []string{"b", "a", " a"}
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	return Dedupe(trimmed)
}

// SplitList splits a comma separated list and applies DedupeAndTrim.
// An empty or blank input yields nil.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(s, ","))
}
