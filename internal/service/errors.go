package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request the caller can fix. Handlers map it
// to a 400; everything else unexpected becomes a 500.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}
