// Package utils contains small helpers for the command line: reading
// request files and printing results.
package utils

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// PrintJSON writes v to w as indented JSON followed by a newline.
func PrintJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal output")
	}

	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "could not write output")
	}
	return nil
}

// ReadInput reads a whole file. "-" reads from stdin instead.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return b, errors.Wrap(err, "could not read stdin")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return b, nil
}
