package roster

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrGroupSize is returned for group sizes below two.
	ErrGroupSize = errors.New("group size must be at least 2")
	// ErrTooFewPeople is returned when there are fewer people than one group needs.
	ErrTooFewPeople = errors.New("fewer people than the group size")
)

// ConfigError reports a run that cannot start with the given people and
// group size. It wraps one of the sentinel errors above.
type ConfigError struct {
	People int
	Size   int
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v (people=%d, size=%d)", e.Err, e.People, e.Size)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CheckGroupSize validates a group size against the number of people.
func CheckGroupSize(people, size int) error {
	if size < 2 {
		return &ConfigError{People: people, Size: size, Err: ErrGroupSize}
	}
	if people < size {
		return &ConfigError{People: people, Size: size, Err: ErrTooFewPeople}
	}
	return nil
}
