// Package rank provides the scored top-K selection shared by the FAQ matcher
// and the history ranker. Keeping the select-and-sort in one place guarantees
// both components break ties the same way.
package rank

import "sort"

type scored[T any] struct {
	item  T
	score float64
}

// TopK scores every candidate, drops non-positive scores, stable-sorts the
// remainder by score descending and returns at most k items. Ties preserve
// the original input order.
func TopK[T any](items []T, k int, score func(T) float64) []T {
	if k <= 0 {
		return nil
	}

	kept := make([]scored[T], 0, len(items))
	for _, item := range items {
		if s := score(item); s > 0 {
			kept = append(kept, scored[T]{item: item, score: s})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if len(kept) > k {
		kept = kept[:k]
	}

	out := make([]T, len(kept))
	for i, s := range kept {
		out[i] = s.item
	}
	return out
}
