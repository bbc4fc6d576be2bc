// Package ratings validates ECF ratings entered per board and owns the
// ordered board sheet a team-match form is built from.
package ratings

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// MinRating and MaxRating bound the ECF scale accepted by the model.
	MinRating = 500
	MaxRating = 3000

	ReasonNotInteger = "Ratings must be integers only."
	ReasonOutOfRange = "Ratings must be between 500 and 3000."
	ReasonNoRatings  = "Enter at least one rating."
)

// Side identifies which team a rating belongs to.
type Side int

const (
	Team1 Side = iota + 1
	Team2
)

func (s Side) String() string {
	switch s {
	case Team1:
		return "Team 1"
	case Team2:
		return "Team 2"
	default:
		return "Team ?"
	}
}

// BoardEntry is the raw text typed for one board.
type BoardEntry struct {
	Team1Text string `json:"team1"`
	Team2Text string `json:"team2"`
}

// ParseRating trims text and returns the rating it holds.
// A nil rating with an empty reason means no value was entered.
func ParseRating(text string) (*int, string) {
	s := strings.TrimFunc(text, isInputSpace)
	if s == "" {
		return nil, ""
	}
	if !allDigits(s) {
		return nil, ReasonNotInteger
	}

	// Overflowing digit strings are out of range too.
	n, err := strconv.Atoi(s)
	if err != nil || n < MinRating || n > MaxRating {
		return nil, ReasonOutOfRange
	}
	return &n, ""
}

// isInputSpace matches the whitespace browsers strip from form values:
// Unicode space separators, line terminators and the byte order mark, but
// not U+0085.
func isInputSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
