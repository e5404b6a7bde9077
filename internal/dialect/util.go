package dialect

import (
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// Tuple joins rendered literals into a parenthesised VALUES tuple.
func Tuple(literals []string) string {
	return "(" + strings.Join(literals, ", ") + ")"
}
