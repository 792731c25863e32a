// Package ptr provides small helpers for building pointer-valued patch
// fields.
package ptr

// To creates a pointer to the given value.
// This is a generic utility function that works with any type.
func To[T any](v T) *T {
	return &v
}

// String creates a pointer to the given string value.
func String(s string) *string {
	return &s
}

// Strings creates a pointer to the given string slice.
func Strings(s []string) *[]string {
	return &s
}
