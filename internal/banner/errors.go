package banner

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStyle     = errors.New("invalid style: must be 1-4")
	ErrUserNameTooLong  = errors.New("username too long: max 50 characters")
	ErrGenerationFailed = errors.New("failed to generate banner")
	ErrSequencerDone    = errors.New("sequencer already ran")
)

// GenerationError is a fatal rendering or encoding failure. Frame is the
// frame index for animated renders and -1 otherwise.
type GenerationError struct {
	Op    string
	Frame int
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("%s: %s frame %d: %v", ErrGenerationFailed, e.Op, e.Frame, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrGenerationFailed, e.Op, e.Err)
}

func (e *GenerationError) Unwrap() []error { return []error{ErrGenerationFailed, e.Err} }

func generationFailed(op string, frame int, err error) error {
	return &GenerationError{Op: op, Frame: frame, Err: err}
}

// IsValidation reports whether err rejects the request's input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidStyle) || errors.Is(err, ErrUserNameTooLong)
}
