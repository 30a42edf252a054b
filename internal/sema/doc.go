// Package sema validates a flattened namespace and computes, for every item,
// the concrete structs whose layout must be known before the item's own.
//
// Type positions are either value positions (struct fields, function
// arguments and returns, function-pointer arguments and returns, array
// elements) or indirect positions (behind `*const`/`*mut`, string pointers
// and slices). `owned` keeps the position of its target. Abstract structs
// are legal only in indirect positions; array elements must always be sized.
package sema
