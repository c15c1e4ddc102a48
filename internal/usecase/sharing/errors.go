package sharing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput tags every input validation failure so transports can map
// the whole family to one status code.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
