package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	// writeSlack is added on top of the upstream timeout so a slow generate still gets its reply written.
	writeSlack = 5 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

func writeTimeoutFor(upstream time.Duration) time.Duration {
	if upstream+writeSlack > writeTimeout {
		return upstream + writeSlack
	}
	return writeTimeout
}
