// Package logging provides the sparkify.Logger implementations.
//
// Available implementations:
//   - ConsoleLogger: human-readable lines on stderr, styled when stderr is a terminal
//   - JSONLogger: one JSON object per line via zerolog, tagged with run_id and component
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
