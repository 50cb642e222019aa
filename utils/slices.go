package utils

import (
	"iter"

	"cosmossdk.io/math"
)

// Map lazily applies fn to every element of s.
func Map[S any, T any](s []S, fn func(S) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// SumInts adds up every amount yielded by seq.
func SumInts(seq iter.Seq[math.Int]) math.Int {
	total := math.ZeroInt()
	for v := range seq {
		total = total.Add(v)
	}
	return total
}
