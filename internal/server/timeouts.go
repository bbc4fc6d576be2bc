package server

import "time"

// The win-probability call happens inside the request, so writes get extra
// room over reads.
const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// submitTimeout ends a submission early enough to render its outcome before
// writeTimeout closes the connection. Vars for tests to override.
var (
	submitTimeout   = writeTimeout - 5*time.Second
	shutdownTimeout = 10 * time.Second
)
