package ga

import "math"

// EliteCount returns how many of size agents survive unchanged.
func EliteCount(size int, fraction float64) int {
	n := int(math.Floor(float64(size)*fraction + 1e-9))
	return min(max(n, 0), size)
}

// Elites returns the leading fraction of an already ranked slice.
func Elites(ranked []*Agent, fraction float64) []*Agent {
	return ranked[:EliteCount(len(ranked), fraction)]
}

// ParentPairs pairs ranked agents consecutively: (0,1), (2,3), ... An odd
// agent out is paired with itself.
func ParentPairs(ranked []*Agent) [][2]*Agent {
	out := make([][2]*Agent, 0, (len(ranked)+1)/2)
	for i := 0; i < len(ranked); i += 2 {
		mom, dad := ranked[i], ranked[i]
		if i+1 < len(ranked) {
			dad = ranked[i+1]
		}
		out = append(out, [2]*Agent{mom, dad})
	}
	return out
}
