// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxPromptAttempts bounds how often an invalid selection is re-prompted.
const MaxPromptAttempts = 3

// ErrTooManyAttempts is returned after MaxPromptAttempts invalid entries.
var ErrTooManyAttempts = errors.New("too many invalid selections")

// Prompt asks for a selection on r, reporting each invalid entry on w and
// asking again up to attempts times. End of input ends the prompt with the
// last parse error, or io.ErrUnexpectedEOF if nothing was read.
func Prompt(r io.Reader, w io.Writer, categories []string, attempts int) (Selection, error) {
	if attempts <= 0 {
		attempts = MaxPromptAttempts
	}
	br := bufio.NewReader(r)

	var lastErr error
	for i := 0; i < attempts; i++ {
		fmt.Fprint(w, "\nEnter the NUMBERS of the columns (separated by commas) to check for the marker: ")
		line, readErr := br.ReadString('\n')
		line = strings.TrimSpace(line)

		if readErr != nil && line == "" {
			if lastErr != nil {
				return Selection{}, lastErr
			}
			if readErr == io.EOF {
				return Selection{}, io.ErrUnexpectedEOF
			}
			return Selection{}, fmt.Errorf("reading selection: %w", readErr)
		}

		sel, err := ParseSelection(line, categories)
		if err == nil {
			return sel, nil
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		lastErr = err

		if readErr != nil {
			return Selection{}, err
		}
	}
	return Selection{}, fmt.Errorf("%w: %v", ErrTooManyAttempts, lastErr)
}
