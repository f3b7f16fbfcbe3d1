// core/ranktest/exact.go
package ranktest

// exactP computes the two-sided exact p-value for an observed U with group
// sizes n1, n2 and no ties. Counts are kept as float64: the largest totals
// (C(98,49) with both groups at ExactLimit-1) exceed int64 but stay well
// within float64's exact-integer range for the ratios we need.
func exactP(n1, n2, u int) float64 {
	counts := uCounts(n1, n2)
	total := 0.0
	for _, c := range counts {
		total += c
	}

	umax := n1 * n2
	half := float64(umax) / 2
	var tail float64
	if float64(u) > half {
		// upper tail: P(U >= u)
		for v := u; v <= umax; v++ {
			tail += counts[v]
		}
	} else {
		// lower tail: P(U <= u)
		for v := 0; v <= u; v++ {
			tail += counts[v]
		}
	}
	p := 2 * tail / total
	if p > 1 {
		p = 1
	}
	return p
}

// uCounts returns the number of rank configurations yielding each U value,
// via the standard recurrence c(m,n,u) = c(m-1,n,u-n) + c(m,n-1,u).
func uCounts(n1, n2 int) []float64 {
	umax := n1 * n2
	prev := make([]float64, (n1+1)*(umax+1)) // table for n-1
	cur := make([]float64, (n1+1)*(umax+1))
	at := func(t []float64, m, u int) float64 {
		if u < 0 {
			return 0
		}
		return t[m*(umax+1)+u]
	}

	// n = 0: only U = 0 is reachable, for any m.
	for m := 0; m <= n1; m++ {
		prev[m*(umax+1)] = 1
	}
	for n := 1; n <= n2; n++ {
		for u := 0; u <= umax; u++ {
			cur[u] = at(prev, 0, u) // m = 0 contributes only via n-1
		}
		for m := 1; m <= n1; m++ {
			for u := 0; u <= umax; u++ {
				cur[m*(umax+1)+u] = at(cur, m-1, u-n) + at(prev, m, u)
			}
		}
		prev, cur = cur, prev
	}

	out := make([]float64, umax+1)
	copy(out, prev[n1*(umax+1):(n1+1)*(umax+1)])
	return out
}
