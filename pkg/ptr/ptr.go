// Package ptr has the one-liner pointer helper used for optional fields.
package ptr

// Ptr returns a pointer to the given value.
func Ptr[T any](v T) *T {
	return &v
}
