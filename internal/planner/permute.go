package planner

import (
	"iter"
	"slices"
)

// permutations yields every ordering of the indices 0..n-1 using Heap's
// algorithm. Each yielded slice is a fresh copy owned by the caller; the
// swap buffer never escapes the generator.
func permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n <= 0 {
			return
		}

		work := make([]int, n)
		for i := range work {
			work[i] = i
		}

		var generate func(k int) bool
		generate = func(k int) bool {
			if k == 1 {
				return yield(slices.Clone(work))
			}
			for i := 0; i < k; i++ {
				if !generate(k - 1) {
					return false
				}
				if k%2 == 1 {
					work[0], work[k-1] = work[k-1], work[0]
				} else {
					work[i], work[k-1] = work[k-1], work[i]
				}
			}
			return true
		}
		generate(n)
	}
}
