package pairs

import "github.com/soniakeys/bits"

// Ledger records, for every person, the set of people they have shared a
// group with. Met(a, b) == Met(b, a) always holds.
type Ledger struct {
	n   int
	met []bits.Bits
}

// NewLedger returns an empty ledger for n people.
func NewLedger(n int) *Ledger {
	l := &Ledger{n: n, met: make([]bits.Bits, n)}
	for i := range l.met {
		l.met[i] = bits.New(n)
	}
	return l
}

// Record marks every member of group as having met every other member.
func (l *Ledger) Record(group []int) {
	for _, a := range group {
		for _, b := range group {
			if a != b {
				l.met[a].SetBit(b, 1)
			}
		}
	}
}

// Met reports whether a and b have already been grouped together.
func (l *Ledger) Met(a, b int) bool {
	return a != b && l.met[a].Bit(b) == 1
}

// Count returns how many distinct people a has met.
func (l *Ledger) Count(a int) int {
	return l.met[a].OnesCount()
}

// MetWith returns how many members of group a has already met.
func (l *Ledger) MetWith(a int, group []int) int {
	c := 0
	for _, g := range group {
		if l.Met(a, g) {
			c++
		}
	}
	return c
}

// Missing returns, in ascending order, the people a has not met yet.
func (l *Ledger) Missing(a int) []int {
	var out []int
	l.met[a].IterateZeros(func(b int) bool {
		if b != a {
			out = append(out, b)
		}
		return true
	})
	return out
}
