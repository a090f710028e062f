package feeds

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a directly requested post that is absent or
	// tombstoned. Empty feed results are not errors.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument marks a limit outside [1,100] or a missing viewer id
	// on an operation that requires one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable marks a content store failure. No partial feed is ever
	// returned alongside it.
	ErrUnavailable = errors.New("content store unavailable")
)

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
