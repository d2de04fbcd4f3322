// Package sortedlist reconciles two snapshots of a collection that are kept
// sorted by a caller supplied ordering.
//
// All functions are pure. The ordering is always passed in, so the package
// makes no assumption about the element type.
package sortedlist

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotSorted is wrapped by the panic value of Compare, CompareInto and
// Subtract when an input is not strictly increasing, and by CheckSorted.
var ErrNotSorted = errors.New("sequence is not sorted")

// Less reports whether a must sort before b.
type Less[T any] func(a, b T) bool

// IsSorted reports whether every adjacent pair in seq is strictly increasing.
// Two neighbours that are equal under less make the sequence unsorted.
func IsSorted[S ~[]T, T any](seq S, less Less[T]) bool {
	return firstUnsorted(seq, less) < 0
}

// CheckSorted is IsSorted returning an error that points at the first pair
// that breaks the order.
func CheckSorted[S ~[]T, T any](seq S, less Less[T]) error {
	if i := firstUnsorted(seq, less); i >= 0 {
		return fmt.Errorf("%w: element %d does not sort before element %d", ErrNotSorted, i, i+1)
	}

	return nil
}

func firstUnsorted[S ~[]T, T any](seq S, less Less[T]) int {
	for i := 1; i < len(seq); i++ {
		if !less(seq[i-1], seq[i]) {
			return i - 1
		}
	}

	return -1
}

func mustBeSorted[S ~[]T, T any](name string, seq S, less Less[T]) {
	if err := CheckSorted(seq, less); err != nil {
		panic(fmt.Errorf("sortedlist: %s: %w", name, err))
	}
}

// Compare returns the elements of oldSeq without a counterpart in newSeq
// (removed) and the elements of newSeq without a counterpart in oldSeq
// (added). Both results keep the order of the sequence they came from.
//
// Both inputs must satisfy IsSorted, otherwise Compare panics.
func Compare[S ~[]T, T any](oldSeq, newSeq S, less Less[T]) (removed, added S) {
	return CompareInto(oldSeq, newSeq, nil, nil, less)
}

// CompareInto is Compare appending to removed and added instead of
// allocating new results. The grown slices are returned.
func CompareInto[S ~[]T, T any](oldSeq, newSeq, removed, added S, less Less[T]) (S, S) {
	mustBeSorted("old sequence", oldSeq, less)
	mustBeSorted("new sequence", newSeq, less)

	i, j := 0, 0
	for i < len(oldSeq) && j < len(newSeq) {
		switch {
		case less(oldSeq[i], newSeq[j]):
			removed = append(removed, oldSeq[i])
			i++
		case less(newSeq[j], oldSeq[i]):
			added = append(added, newSeq[j])
			j++
		default:
			// same element, skip both
			i++
			j++
		}
	}

	// leftovers
	removed = append(removed, oldSeq[i:]...)
	added = append(added, newSeq[j:]...)

	return removed, added
}

// Subtract returns the elements of list1 that are not matched by an element
// of list2, in the order of list1. Every element of list2 consumes at most
// one equal element of list1.
//
// An element of list2 with no counterpart left in list1 is passed to
// onUnmatched and skipped. This includes elements of list2 left over once
// list1 is used up, which a plain merge would drop without a word. A nil
// onUnmatched logs a warning through the default slog logger.
//
// Both inputs must satisfy IsSorted, otherwise Subtract panics.
func Subtract[S ~[]T, T any](list1, list2 S, less Less[T], onUnmatched func(item T)) S {
	mustBeSorted("first list", list1, less)
	mustBeSorted("second list", list2, less)

	if onUnmatched == nil {
		onUnmatched = warnUnmatched[T]
	}

	var result S
	i, j := 0, 0
	for i < len(list1) && j < len(list2) {
		switch {
		case less(list1[i], list2[j]):
			result = append(result, list1[i])
			i++
		case less(list2[j], list1[i]):
			onUnmatched(list2[j])
			j++
		default:
			i++
			j++
		}
	}

	for _, item := range list2[j:] {
		onUnmatched(item)
	}

	return append(result, list1[i:]...)
}

func warnUnmatched[T any](item T) {
	slog.Warn("[treesync] subtracting value that isn't in set", slog.Any("value", item))
}

// IsSortedOrdered is IsSorted using the natural order of T.
func IsSortedOrdered[S ~[]T, T cmp.Ordered](seq S) bool {
	return IsSorted(seq, cmp.Less[T])
}

// CompareOrdered is Compare using the natural order of T.
func CompareOrdered[S ~[]T, T cmp.Ordered](oldSeq, newSeq S) (removed, added S) {
	return Compare(oldSeq, newSeq, cmp.Less[T])
}

// SubtractOrdered is Subtract using the natural order of T.
func SubtractOrdered[S ~[]T, T cmp.Ordered](list1, list2 S, onUnmatched func(item T)) S {
	return Subtract(list1, list2, cmp.Less[T], onUnmatched)
}
