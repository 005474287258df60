// Package hungarian implements the Kuhn-Munkres algorithm for minimum-cost
// perfect bipartite matching, used by pkg/heuristic to pair non-frozen boxes
// with uncovered goals admissibly.
package hungarian

import "math"

// MaxN is the hard cap on matching size: the cost matrix and the working
// arrays are stack-allocated at this size, so the only heap allocation of
// a matching is the returned assignment slice.
const MaxN = 64

// Solve finds a minimum-cost perfect matching on an n x n cost matrix and
// returns assign, where assign[i] is the column matched to row i. n must be
// in [0, MaxN]; cost entries must be non-negative. Runs in O(n^3) via the
// Jonker-Volgenant-style potential update (the standard Kuhn-Munkres/
// Hungarian algorithm with a single-row-at-a-time augmenting search).
func Solve(n int, cost func(i, j int) int) []int {
	if n == 0 {
		return nil
	}

	const inf = math.MaxInt32

	var c [MaxN][MaxN]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c[i][j] = cost(i, j)
		}
	}

	var u, v [MaxN + 1]int
	var p, way [MaxN + 1]int // p[j] = row matched to column j, 1-indexed; 0 = unmatched

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		var minv [MaxN + 1]int
		var used [MaxN + 1]bool
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0, delta, j1 := p[j0], inf, -1

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assign := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}

// Cost returns the total cost of the matching produced by Solve.
func Cost(n int, cost func(i, j int) int, assign []int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += cost(i, assign[i])
	}
	return total
}
