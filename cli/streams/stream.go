// Package streams wraps the process's standard streams with the
// terminal awareness prompts and color output need.
package streams

type commonStream struct {
	isTerminal bool
}

// IsTerminal returns true if this stream is connected to a terminal.
func (s *commonStream) IsTerminal() bool {
	return s.isTerminal
}

// SetIsTerminal overrides whether the stream is treated as a terminal,
// for testing.
func (s *commonStream) SetIsTerminal(isTerminal bool) {
	s.isTerminal = isTerminal
}
