// Package strings provides string list helpers for configuration values.
package strings

import (
	"strings"
)

// SplitList flattens values that may each hold a comma-separated list, as
// environment overrides do, into trimmed and deduplicated entries. Order is
// preserved.
//
// Example:
//
//	SplitList([]string{"kafka-1:9092, kafka-2:9092", "kafka-1:9092"})
//	// Returns: []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(values []string) []string {
	var parts []string
	for _, v := range values {
		parts = append(parts, strings.Split(v, ",")...)
	}
	return DedupeAndTrim(parts)
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
// A slice without any usable entry yields nil.
func DedupeAndTrim(values []string) []string {
	var result []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}
