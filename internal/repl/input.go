package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// maxLineLength bounds a single input line, well above the longest valid insert.
const maxLineLength = 1 << 20

// ErrInputClosed is returned by Run when input ends before ".exit".
var ErrInputClosed = errors.New("input closed before .exit")

// readLines feeds lines from in until EOF, a read error, or ctx is done.
// The error channel receives exactly one value (nil at clean EOF) once lines
// is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 4096), maxLineLength)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()

	return lines, errc
}
