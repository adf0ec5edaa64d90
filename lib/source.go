package lib

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// SourceProvider yields the lines of one program, without line terminators.
type SourceProvider interface {
	Lines() ([]string, error)
}

type FileSource struct {
	Path string
}

func (f FileSource) Lines() ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines, err := ReaderSource{Reader: file}.Lines()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return lines, nil
}

type ReaderSource struct {
	Reader io.Reader
}

const maxLineLength = 1024 * 1024

func (r ReaderSource) Lines() ([]string, error) {
	scanner := bufio.NewScanner(r.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
