package config

// ServiceName identifies this process in logs and telemetry.
const ServiceName = "ecf-team-win"

const (
	envPort           = "PORT"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envTeamWinURL     = "TEAMWIN_API_URL"
	envTeamWinKey     = "TEAMWIN_API_KEY"
	envTeamWinTimeout = "TEAMWIN_TIMEOUT"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envDotenvPath     = "DOTENV_PATH"

	defaultPort        = "4000"
	defaultTeamWinURL  = "https://lasker-1e717f0b8782.herokuapp.com/api/chess/team-win"
	defaultMetricsPort = "9090"
	defaultServiceName = ServiceName
	defaultDotenvPath  = ".env"
	// Zero means the upstream call waits until the request context ends.
	defaultTeamWinTimeout = Duration(0)
)
