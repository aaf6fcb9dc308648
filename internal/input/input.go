// Package input contains line readers used for getting equation input from
// the CLI or other sources.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads one line of input at a time.
type Reader interface {
	// ReadLine blocks until a line containing non-space characters is read,
	// and returns it with surrounding space trimmed. At end of input it
	// returns io.EOF.
	ReadLine() (string, error)

	// Close releases any resources held by the reader.
	Close() error
}

// DirectReader reads lines from any generic input stream directly. It can be
// used with any io.Reader but does not sanitize the input of control and
// escape sequences.
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader reads lines from stdin using a go implementation of the
// GNU Readline library. This keeps input clear of typing and editing escape
// sequences and enables the use of line history. This should in general only
// be used when directly connected to a TTY.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewDirectReader creates a DirectReader on the provided stream. The returned
// Reader must have Close() called on it before disposal.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes readline.
// The returned Reader must have Close() called on it before disposal to
// properly teardown readline resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// Close cleans up resources associated with the DirectReader.
func (dr *DirectReader) Close() error {
	// nothing to release yet, but callers should treat the reader as though
	// it must have Close called on it
	return nil
}

// Close cleans up readline resources associated with the InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the stream. The returned string will only
// be empty if there is an error reading input, otherwise this function is
// blocked on until a line containing non-space characters is read.
func (dr *DirectReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadLine reads the next line from stdin. The returned string will only be
// empty if there is an error reading input, otherwise this function is
// blocked on until a line containing non-space characters is read.
func (ir *InteractiveReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}
