// Package report renders a schedule for people to read.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gigamonkey/groups/internal/roster"
	"github.com/gigamonkey/groups/internal/score"
)

// Write prints the coverage summary and then one line per group, members in
// lexicographic order.
func Write(w io.Writer, s score.Score, groups [][]int, r *roster.Roster) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := fmt.Fprintln(w, strings.Join(r.Members(g), ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Named resolves groups to names, each sorted lexicographically.
func Named(groups [][]int, r *roster.Roster) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = r.Members(g)
	}
	return out
}
