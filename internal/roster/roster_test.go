package roster_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigamonkey/groups/internal/roster"
)

func TestReadStripsAndSorts(t *testing.T) {
	r, err := roster.Read(strings.NewReader("carol\r\nalice\n\nbob\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob", "carol"}, r.Names())
	assert.Empty(t, r.Duplicates)

	i, ok := r.Index("bob")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "carol", r.Name(2))
}

func TestReadCollapsesDuplicates(t *testing.T) {
	r, err := roster.Read(strings.NewReader("dave\nalice\ndave\nalice\ndave\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"alice", "dave"}, r.Duplicates)
}

func TestMembersAreLexicographic(t *testing.T) {
	r := roster.New([]string{"D", "B", "A", "C"})
	assert.Equal(t, []string{"A", "C", "D"}, r.Members([]int{3, 0, 2}))
}

func TestLoadFromFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0644))

	r, err := roster.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	r, err = roster.Load("-", strings.NewReader("z\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, r.Names())

	_, err = roster.Load(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
}

func TestCheckGroupSize(t *testing.T) {
	require.NoError(t, roster.CheckGroupSize(5, 3))
	require.NoError(t, roster.CheckGroupSize(3, 3))

	err := roster.CheckGroupSize(5, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrGroupSize))

	err = roster.CheckGroupSize(2, 3)
	var cfgErr *roster.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 2, cfgErr.People)
	assert.True(t, errors.Is(err, roster.ErrTooFewPeople))
}
