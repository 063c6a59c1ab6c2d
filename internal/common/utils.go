package common

import "strings"

// Normalize lowercases s and collapses inner whitespace, for case-insensitive lookups.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
