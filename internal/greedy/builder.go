// Package greedy schedules groups one at a time, each built to cover as many
// still-unmet pairs as it can, until every pair has met.
package greedy

import (
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gigamonkey/groups/internal/pairs"
)

// Builder picks the members of the next group from the current universe of
// uncovered pairs and the meeting ledger. It never modifies either.
type Builder struct {
	size      int
	rng       *rand.Rand
	log       logrus.FieldLogger
	fallbacks int
}

// NewBuilder returns a builder for groups of the given size.
func NewBuilder(size int, rng *rand.Rand, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{size: size, rng: rng, log: log}
}

// Fallbacks returns how many members were added at random because no
// uncovered pair could extend the group.
func (b *Builder) Fallbacks() int {
	return b.fallbacks
}

// Build returns the next group, sorted ascending.
//
// While two or more seats are open it takes the uncovered pair disjoint from
// the group whose members have met the fewest current members. With one seat
// open, or when no disjoint pair exists, it takes an uncovered pair with
// exactly one member already in the group, ranked the same way on the new
// member. Equal keys go to the pair that comes first in (A, B) order. When no
// pair qualifies a random outsider joins, which costs at least one repeat
// meeting.
func (b *Builder) Build(u *pairs.Universe, l *pairs.Ledger) []int {
	n := u.People()
	target := min(b.size, n)
	group := make([]int, 0, target)
	in := make([]bool, n)

	add := func(p int) {
		in[p] = true
		group = append(group, p)
	}

	for len(group) < target {
		if target-len(group) >= 2 {
			if p, ok := bestDisjoint(u, l, group, in); ok {
				add(p.A)
				add(p.B)
				continue
			}
		}
		if m, ok := bestExtension(u, l, group, in); ok {
			add(m)
			continue
		}
		m := b.randomOutsider(in)
		b.fallbacks++
		b.log.WithFields(logrus.Fields{
			"group":  group,
			"person": m,
		}).Debug("no uncovered pair extends group, adding random person")
		add(m)
	}

	sort.Ints(group)
	return group
}

// bestDisjoint ranks uncovered pairs with neither member in the group.
func bestDisjoint(u *pairs.Universe, l *pairs.Ledger, group []int, in []bool) (pairs.Pair, bool) {
	var (
		best  pairs.Pair
		key   = -1
		found bool
	)
	u.Each(func(p pairs.Pair) bool {
		if in[p.A] || in[p.B] {
			return true
		}
		k := l.MetWith(p.A, group) + l.MetWith(p.B, group)
		if !found || k < key {
			best, key, found = p, k, true
		}
		return key > 0
	})
	return best, found
}

// bestExtension ranks uncovered pairs with exactly one member in the group and
// returns the other member.
func bestExtension(u *pairs.Universe, l *pairs.Ledger, group []int, in []bool) (int, bool) {
	var (
		best  int
		key   = -1
		found bool
	)
	u.Each(func(p pairs.Pair) bool {
		if in[p.A] == in[p.B] {
			return true
		}
		m := p.A
		if in[m] {
			m = p.B
		}
		k := l.MetWith(m, group)
		if !found || k < key {
			best, key, found = m, k, true
		}
		return key > 0
	})
	return best, found
}

func (b *Builder) randomOutsider(in []bool) int {
	out := make([]int, 0, len(in))
	for p, taken := range in {
		if !taken {
			out = append(out, p)
		}
	}
	return out[b.rng.Intn(len(out))]
}
