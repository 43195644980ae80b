package utils

import "strconv"

// ParseIndex parses the optional disambiguation index of a by-name route.
// An empty value is index 0; negative or non-numeric values are rejected.
func ParseIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Nth returns items[index] when index is in range.
func Nth[T any](items []T, index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, false
	}
	return items[index], true
}
