package changelog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entry doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates an entry with the same version already exists.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrInvalid indicates the entry failed validation.
	ErrInvalid = errors.New("invalid entry")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
