package providers

import "time"

// shutdownTimeout bounds how long in-flight requests get to finish on shutdown.
const shutdownTimeout = 15 * time.Second
