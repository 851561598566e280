// Package score measures how well a sequence of groups covers every pair of
// people. Lower values are better.
package score

import (
	"fmt"

	"github.com/soniakeys/bits"

	"github.com/gigamonkey/groups/internal/pairs"
)

// Score summarizes the coverage of a group sequence.
type Score struct {
	// Pairs is C(n, 2), the number of pairs that should meet.
	Pairs int `json:"pairs"`
	// Meetings counts every pair meeting in every group, repeats included.
	Meetings int `json:"meetings"`
	// Missed counts pairs that never share a group.
	Missed int `json:"missed"`
}

// Of scores groups of person indices drawn from n people. It neither retains
// nor modifies its arguments.
func Of(groups [][]int, n int) Score {
	s := Score{Pairs: pairs.Count(n)}
	covered := bits.New(s.Pairs)
	distinct := 0

	for _, g := range groups {
		s.Meetings += pairs.Count(len(g))
		for i := 0; i < len(g); i++ {
			for j := i + 1; j < len(g); j++ {
				idx := pairs.Index(n, g[i], g[j])
				if covered.Bit(idx) == 0 {
					covered.SetBit(idx, 1)
					distinct++
				}
			}
		}
	}

	s.Missed = s.Pairs - distinct
	return s
}

// Value is the ratio of meetings to pairs plus one whole point per missed
// pair, so any missed pair outweighs any amount of repetition.
func (s Score) Value() float64 {
	if s.Pairs == 0 {
		return float64(s.Missed)
	}
	return float64(s.Meetings)/float64(s.Pairs) + float64(s.Missed)
}

// Ratio is meetings per pair; 1.0 means every pair met exactly once.
func (s Score) Ratio() float64 {
	if s.Pairs == 0 {
		return 0
	}
	return float64(s.Meetings) / float64(s.Pairs)
}

// Repeats counts meetings beyond the first for each covered pair.
func (s Score) Repeats() int {
	return s.Meetings - (s.Pairs - s.Missed)
}

func (s Score) String() string {
	out := fmt.Sprintf("%d meetings for %d pairs;", s.Meetings, s.Pairs)
	if s.Missed > 0 {
		out += fmt.Sprintf(" missed: %d;", s.Missed)
	}
	return out + fmt.Sprintf(" score: %.4f", s.Value())
}
