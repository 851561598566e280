// Package roster loads the people to be grouped and maps their names to the
// dense indices the solvers work with.
package roster

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Roster is an immutable, lexicographically ordered set of names. Person i is
// Names()[i]; the solvers only ever see the indices.
type Roster struct {
	names []string
	index map[string]int

	// Duplicates lists names that appeared more than once in the input and
	// were collapsed into a single person.
	Duplicates []string
}

// New builds a roster from names. Duplicates are collapsed and recorded.
func New(names []string) *Roster {
	r := &Roster{index: make(map[string]int, len(names))}

	seen := make(map[string]int, len(names))
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			r.Duplicates = append(r.Duplicates, name)
		}
	}

	r.names = make([]string, 0, len(seen))
	for name := range seen {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	sort.Strings(r.Duplicates)

	for i, name := range r.names {
		r.index[name] = i
	}
	return r
}

// Read parses one name per line. Line terminators are stripped and blank
// lines are skipped.
func Read(in io.Reader) (*Roster, error) {
	var names []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		name := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading names")
	}
	return New(names), nil
}

// Load reads a roster from path, or from stdin when path is empty or "-".
func Load(path string, stdin io.Reader) (*Roster, error) {
	if path == "" || path == "-" {
		return Read(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return r, nil
}

// Len returns the number of distinct people.
func (r *Roster) Len() int {
	return len(r.names)
}

// Name returns the name of person i.
func (r *Roster) Name(i int) string {
	return r.names[i]
}

// Index returns the index assigned to name.
func (r *Roster) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Names returns a copy of all names in index order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Members resolves a group of indices to names in lexicographic order.
func (r *Roster) Members(group []int) []string {
	out := make([]string, len(group))
	for i, p := range group {
		out[i] = r.names[p]
	}
	sort.Strings(out)
	return out
}
