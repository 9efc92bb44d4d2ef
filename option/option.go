// Package option provides the functional options helper shared by
// configurable types in this module.
package option

// Option mutates a value of type T during construction.
type Option[T any] func(*T)
