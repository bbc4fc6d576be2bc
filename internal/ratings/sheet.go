package ratings

import "fmt"

const (
	MinBoards = 1
	MaxBoards = 12
)

// Sheet is the ordered list of board rows behind the form.
// All mutation goes through its methods so the 1..12 bound always holds.
type Sheet struct {
	rows []BoardEntry
}

// NewSheet builds a sheet from existing rows, padding to one empty row and
// dropping anything past MaxBoards.
func NewSheet(entries ...BoardEntry) *Sheet {
	rows := make([]BoardEntry, 0, MaxBoards)
	for _, e := range entries {
		if len(rows) == MaxBoards {
			break
		}
		rows = append(rows, e)
	}
	for len(rows) < MinBoards {
		rows = append(rows, BoardEntry{})
	}
	return &Sheet{rows: rows}
}

// Len returns the number of boards.
func (s *Sheet) Len() int {
	return len(s.rows)
}

// CanAdd reports whether another board fits.
func (s *Sheet) CanAdd() bool {
	return len(s.rows) < MaxBoards
}

// CanRemove reports whether a board may be removed.
func (s *Sheet) CanRemove() bool {
	return len(s.rows) > MinBoards
}

// Add appends an empty board.
func (s *Sheet) Add() error {
	if !s.CanAdd() {
		return ErrSheetFull
	}
	s.rows = append(s.rows, BoardEntry{})
	return nil
}

// Remove deletes the 1-based board once the user has confirmed it.
// Later boards shift up and take the freed board numbers.
func (s *Sheet) Remove(board int, confirmed bool) error {
	if err := s.checkBoard(board); err != nil {
		return err
	}
	if !s.CanRemove() {
		return ErrSheetMinimum
	}
	if !confirmed {
		return ErrRemovalNotConfirmed
	}
	s.rows = append(s.rows[:board-1], s.rows[board:]...)
	return nil
}

// Set replaces the text typed for one side of a board.
func (s *Sheet) Set(board int, side Side, text string) error {
	if err := s.checkBoard(board); err != nil {
		return err
	}
	switch side {
	case Team1:
		s.rows[board-1].Team1Text = text
	case Team2:
		s.rows[board-1].Team2Text = text
	default:
		return fmt.Errorf("ratings: unknown side %d", side)
	}
	return nil
}

// Entries returns a copy of the rows in board order.
func (s *Sheet) Entries() []BoardEntry {
	out := make([]BoardEntry, len(s.rows))
	copy(out, s.rows)
	return out
}

// Label returns the display label for a 1-based board position.
func Label(board int) string {
	return fmt.Sprintf("Board %d:", board)
}

// Collect validates the current rows.
func (s *Sheet) Collect() (Teams, error) {
	return Collect(s.rows)
}

func (s *Sheet) checkBoard(board int) error {
	if board < 1 || board > len(s.rows) {
		return fmt.Errorf("%w: %d", ErrBoardOutOfRange, board)
	}
	return nil
}
