// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and graceful-shutdown operations.
const DefaultTimeout = 10 * time.Second
