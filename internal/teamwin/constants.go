package teamwin

// UpstreamName labels the service in logs and metrics.
const UpstreamName = "teamwin"

const (
	defaultURL       = "https://lasker-1e717f0b8782.herokuapp.com/api/chess/team-win"
	apiKeyHeader     = "x-api-key"
	contentTypeJSON  = "application/json"
	maxErrorBodySize = 64 << 10
)
