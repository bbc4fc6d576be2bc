package config

// TeamWinConfig controls how we talk to the remote win-probability service.
// The API key is a shared client credential, not an access control boundary.
type TeamWinConfig struct {
	URL     string
	APIKey  string
	Timeout Duration
}

func loadTeamWin() TeamWinConfig {
	return TeamWinConfig{
		URL:     envOrDefault(envTeamWinURL, defaultTeamWinURL),
		APIKey:  envOrDefault(envTeamWinKey, ""),
		Timeout: durationEnvOrDefault(envTeamWinTimeout, defaultTeamWinTimeout),
	}
}
