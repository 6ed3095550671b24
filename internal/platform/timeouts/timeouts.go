// Package timeouts defines shared timeout constants for the dashboard process.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps the time spent writing one response. Tab renders rasterize
// charts synchronously, so this is looser than ReadHeader.
const Write = 30 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown bounds the final span flush on exit.
const TelemetryShutdown = 5 * time.Second
