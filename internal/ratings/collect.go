package ratings

// Teams is the request body sent to the win-probability service.
// Absent ratings are omitted, so board positions are not preserved.
type Teams struct {
	Team1 []int `json:"team1"`
	Team2 []int `json:"team2"`
}

// Collect validates entries in board order, team 1 before team 2, and
// returns the first violation found. It fails when no rating was entered.
func Collect(entries []BoardEntry) (Teams, error) {
	teams := Teams{Team1: []int{}, Team2: []int{}}

	for i, entry := range entries {
		board := i + 1
		v1, reason1 := ParseRating(entry.Team1Text)
		v2, reason2 := ParseRating(entry.Team2Text)

		if reason1 != "" {
			return Teams{}, &ValidationError{Board: board, Side: Team1, Reason: reason1}
		}
		if reason2 != "" {
			return Teams{}, &ValidationError{Board: board, Side: Team2, Reason: reason2}
		}

		if v1 != nil {
			teams.Team1 = append(teams.Team1, *v1)
		}
		if v2 != nil {
			teams.Team2 = append(teams.Team2, *v2)
		}
	}

	if len(teams.Team1) == 0 && len(teams.Team2) == 0 {
		return Teams{}, &ValidationError{Reason: ReasonNoRatings}
	}
	return teams, nil
}
