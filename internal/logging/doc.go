// Package logging provides the structured logging interface used by the
// lessons runner. Components log through the Logger interface; the zerolog
// adapter writes JSON lines to the diagnostic stream.
package logging
