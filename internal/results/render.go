package results

import (
	"fmt"
	"strconv"
)

const (
	SectionMatch  = "Match"
	SectionBoards = "Boards"

	missingRating = "missing"
)

// Render builds the match block followed by one line per board, keeping
// the board order of the response.
func Render(result MatchResult) DisplayModel {
	match := Section{
		Title: SectionMatch,
		Lines: []Line{
			{Label: "Boards", Value: strconv.Itoa(result.Boards)},
			{Label: "Team 1 match win", Value: FormatPercent(result.Summary.Team1MatchWinProbability)},
			{Label: "Team 2 match win", Value: FormatPercent(result.Summary.Team2MatchWinProbability)},
		},
	}

	boards := Section{Title: SectionBoards, Lines: make([]Line, 0, len(result.PerBoard))}
	for _, b := range result.PerBoard {
		boards.Lines = append(boards.Lines, Line{
			Label: BoardLabel(b),
			Value: FormatPercent(b.Team1WinProbability),
		})
	}

	return DisplayModel{Sections: []Section{match, boards}}
}

// BoardLabel renders "Board n (r1 vs r2)" with "missing" for absent ratings.
func BoardLabel(b BoardResult) string {
	return fmt.Sprintf("Board %d (%s vs %s)", b.Board, ratingText(b.Team1Rating), ratingText(b.Team2Rating))
}

func ratingText(r *int) string {
	if r == nil {
		return missingRating
	}
	return strconv.Itoa(*r)
}

// Section returns the section with the given title, if present.
func (d DisplayModel) Section(title string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}
