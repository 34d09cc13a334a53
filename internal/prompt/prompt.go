// Package prompt asks the operator yes/no questions before destructive actions.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	// Confirm returns true only for an affirmative answer.
	Confirm(question string) (bool, error)
}

// Reader reads answers line by line from an input stream.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader creates a Confirmer that writes questions to out and reads answers from in.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Confirm writes the question and reads a single line.
// End of input counts as a decline.
func (r *Reader) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(r.out, "%s (y/N): ", question); err != nil {
		return false, err
	}

	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	return IsAffirmative(line), nil
}

// Always answers every question with its own value without reading input.
type Always bool

// Confirm implements Confirmer.
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and surrounding space.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
