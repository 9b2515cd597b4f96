// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package pointer provides generic helpers for optional values.

Catalog inputs are partial: every field is a pointer so "absent" and "zero"
stay distinguishable. These helpers keep the nil checks out of the call sites.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Or returns override when it is set, otherwise base.
func Or[T any](override, base *T) *T {
	if override != nil {
		return override
	}
	return base
}
