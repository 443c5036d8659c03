// Package lifecycle holds the process-wide shutdown flag. The health
// endpoint reports shutting-down while the proxy drains in-flight
// forecast requests, so load balancers stop routing new traffic to it.
package lifecycle

import "sync/atomic"

var shuttingDown atomic.Bool

// SetShuttingDown marks the proxy as draining. Set on SIGTERM/SIGINT,
// before the HTTP server stops accepting connections.
func SetShuttingDown(v bool) {
	shuttingDown.Store(v)
}

// IsShuttingDown reports whether the proxy is draining and should not
// receive new traffic.
func IsShuttingDown() bool {
	return shuttingDown.Load()
}
