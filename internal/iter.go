package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeq2Zip pairs each key with the value at the same index.
// Iteration stops at the end of the shorter slice.
func IterSeq2Zip[T1 any, T2 any](keys []T1, values []T2) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for n := range min(len(keys), len(values)) {
			if !yield(keys[n], values[n]) {
				return
			}
		}
	}
}
