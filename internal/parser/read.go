package parser

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"
)

// maxLineSize bounds a single log line.
const maxLineSize = 16 * 1024 * 1024

// Lines is the full content of a log file, one entry per line.
type Lines struct {
	Lines []string
	// Invalid counts lines that were not valid UTF-8. They are kept as empty
	// strings so line positions stay stable; they tokenize to nothing.
	Invalid int
}

// ReadFile reads every line of the file at path.
func ReadFile(path string) (*Lines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadAll(f)
}

// ReadAll reads every line from r.
func ReadAll(r io.Reader) (*Lines, error) {
	out := &Lines{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			out.Invalid++
			line = ""
		}
		out.Lines = append(out.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		return out, err
	}

	return out, nil
}
