// Package util holds small string and map helpers shared across blogkit.
package util

import "maps"

// FirstNonEmpty returns the first non-empty string in values.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// CloneStringMap returns a shallow copy of input.
// It returns a non-nil map even when input is nil.
func CloneStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	maps.Copy(out, input)
	return out
}

// CloneAnyMap returns a shallow copy of input with room for extra keys.
// It returns a non-nil map even when input is nil.
func CloneAnyMap(input map[string]any, extra int) map[string]any {
	if extra < 0 {
		extra = 0
	}
	out := make(map[string]any, len(input)+extra)
	maps.Copy(out, input)
	return out
}
