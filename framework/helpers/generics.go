package helpers

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IfElse returns valueIfTrue or valueIfFalse depending on isTrue.
func IfElse[V any](isTrue bool, valueIfTrue, valueIfFalse V) V {
	if isTrue {
		return valueIfTrue
	}
	return valueIfFalse
}

// SliceContains returns true if and only if the slice has an element that equals the value.
func SliceContains[V comparable](value V, slice []V) bool {
	return slices.Contains(slice, value)
}

// CopyOf returns a shallow copy of a slice. A nil slice stays nil.
func CopyOf[V any](slice []V) []V {
	return slices.Clone(slice)
}

// CopyOrEmpty is like CopyOf, but a nil slice becomes an empty one.
func CopyOrEmpty[V any](slice []V) []V {
	if slice == nil {
		return []V{}
	}
	return slices.Clone(slice)
}

// CopyMap returns a shallow copy of a map. The result is never nil, so that the copy can be
// written to even if the original was nil.
func CopyMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return maps.Clone(m)
}

// Sorted returns a sorted copy of a slice, leaving the original unchanged.
func Sorted[V constraints.Ordered](slice []V) []V {
	ret := slices.Clone(slice)
	slices.Sort(ret)
	return ret
}
