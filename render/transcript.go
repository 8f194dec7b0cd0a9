package render

import (
	"fmt"
	"os"
	"strings"

	"krk/game"
)

// Transcript appends plain-text board renders to a result file, so a
// finished game can be replayed by eye.
type Transcript struct {
	f *os.File
}

// OpenTranscript opens (or creates) the transcript file at path for
// appending.
func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening transcript file: %w", err)
	}
	return &Transcript{f: f}, nil
}

// WriteHeader separates games within the transcript.
func (t *Transcript) WriteHeader(title string) error {
	rule := strings.Repeat("=", 57)
	if _, err := fmt.Fprintf(t.f, "%s\n%s\n%s\n", rule, title, rule); err != nil {
		return fmt.Errorf("writing transcript header: %w", err)
	}
	return nil
}

// WriteState appends the banner and the plain board for one position.
func (t *Transcript) WriteState(s *game.GameState, banner string) error {
	if _, err := fmt.Fprintf(t.f, "\n%s\n%s", banner, PlainBoard(s)); err != nil {
		return fmt.Errorf("writing transcript state: %w", err)
	}
	return nil
}

func (t *Transcript) Close() error {
	return t.f.Close()
}
