package ratings

import (
	"errors"
	"fmt"
)

var (
	ErrSheetFull           = errors.New("ratings: board limit reached")
	ErrSheetMinimum        = errors.New("ratings: at least one board is required")
	ErrBoardOutOfRange     = errors.New("ratings: board out of range")
	ErrRemovalNotConfirmed = errors.New("ratings: board removal not confirmed")
)

// ValidationError reports the first bad rating found while collecting.
// Board is 1-based; zero means the error is not tied to a board.
type ValidationError struct {
	Board  int
	Side   Side
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Board <= 0 {
		return e.Reason
	}
	return fmt.Sprintf("Board %d, %s: %s", e.Board, e.Side, e.Reason)
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
