package benchchart

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

func Filter[T any](slice []T, predicate func(T) bool) []T {
	filtered := make([]T, 0, len(slice))
	for _, elem := range slice {
		if predicate(elem) {
			filtered = append(filtered, elem)
		}
	}
	return filtered
}

func Min[T Number](a T, b T) T {
	if a > b {
		return b
	}

	return a
}

// Arange returns start, start+step, ... for every value strictly below stop.
// A non-positive step yields an empty slice.
func Arange[T Number](start, stop, step T) []T {
	if step <= 0 || start >= stop {
		return []T{}
	}

	values := make([]T, 0, int((stop-start)/step)+1)
	for i := 0; ; i++ {
		// Multiply instead of accumulating so float steps don't drift.
		v := start + T(i)*step
		if v >= stop {
			break
		}
		values = append(values, v)
	}

	return values
}
