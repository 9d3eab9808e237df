// Package logging defines the structured-logging interface the server and
// CLI components log through, decoupling them from the concrete backend.
package logging

import "context"

// Logger accepts a message plus alternating key/value pairs:
//
//	log.Info(ctx, "import finished", "added", n)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn is for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given pairs on every record.
	With(args ...any) Logger
}
