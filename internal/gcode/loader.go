package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadLines reads a whole file into memory as lines, terminators included.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	lines, err := LoadLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// LoadLines splits r into lines. Every line keeps its "\n" (and a preceding
// "\r", if any); a final line without a terminator is kept as-is.
// bufio.Scanner is not used because it drops terminators and caps line length.
func LoadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
