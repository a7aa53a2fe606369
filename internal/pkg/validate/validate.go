package validate

import "strings"

// Required reports whether a request field carries a non-blank value.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}
