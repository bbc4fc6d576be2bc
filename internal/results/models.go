// Package results turns a team-match response from the win-probability
// service into display lines.
package results

// MatchResult is the success body returned by the win-probability service.
type MatchResult struct {
	Boards   int           `json:"boards"`
	Summary  Summary       `json:"summary"`
	PerBoard []BoardResult `json:"perBoard"`
}

// Summary carries match-level win probabilities in [0,1].
type Summary struct {
	Team1MatchWinProbability float64 `json:"team1MatchWinProbability"`
	Team2MatchWinProbability float64 `json:"team2MatchWinProbability"`
}

// BoardResult is one board's outcome; ratings are nil when not entered.
type BoardResult struct {
	Board               int     `json:"board"`
	Team1Rating         *int    `json:"team1Rating"`
	Team2Rating         *int    `json:"team2Rating"`
	Team1WinProbability float64 `json:"team1WinProbability"`
}

// DisplayModel is an ordered set of titled label/value blocks.
type DisplayModel struct {
	Sections []Section `json:"sections"`
}

// Section is a titled block of lines.
type Section struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// Line is a single label/value pair.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
