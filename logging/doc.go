// Package logging provides a minimal logging interface and adapters for
// clawbridge.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the orchestrator and gateway clients use for diagnostics.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Failed exchanges are logged through this interface but never persisted to
// history; the design intentionally keeps the interface minimal so hosts can
// plug their own structured logger.
package logging
