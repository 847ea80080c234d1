// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with generic
functional helpers.
*/
package slice

// Filter returns the elements for which predicate is true, in input order.
//
// The result is never nil, so it encodes as an empty JSON array.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}
