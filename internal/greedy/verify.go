package greedy

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gigamonkey/groups/internal/pairs"
)

// ErrIterationCap means the planner formed its maximum number of groups with
// pairs still uncovered. Each group covers at least one new pair, so this
// indicates a bug rather than a hard input.
var ErrIterationCap = errors.New("group limit reached before every pair met")

// ConsistencyError reports a person whose ledger is incomplete after the
// universe was exhausted.
type ConsistencyError struct {
	Person  int
	Missing []int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("person %d never met %v", e.Person, e.Missing)
}

// Verify checks that each of the n people has met all the others.
func Verify(l *pairs.Ledger, n int) error {
	for a := 0; a < n; a++ {
		if l.Count(a) == n-1 {
			continue
		}
		return &ConsistencyError{Person: a, Missing: l.Missing(a)}
	}
	return nil
}
