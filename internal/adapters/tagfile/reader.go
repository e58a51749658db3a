// Package tagfile implements a single-pass, forward-only reader for the
// RFC-822-style tag-file format used by Debian-style package indices and
// translation files: records separated by blank lines, fields of the form
// "Key: value" with continuation lines beginning with whitespace.
package tagfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// Reader implements usecases.TagFileReader.
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner

	current map[string]string
	pending string // line to process before scanning further; NextSection clears it and never sets it
	done    bool
}

var _ usecases.TagFileReader = (*Reader)(nil)

// NewReader creates an unopened tag-file reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open begins reading the tag-file at path.
func (r *Reader) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tagfile %s: %w", path, err)
	}
	r.file = f
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	r.scanner = scanner
	r.current = nil
	r.pending = ""
	r.done = false
	return nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ReadField returns the value of name in the current section.
func (r *Reader) ReadField(name string) (string, bool) {
	if r.current == nil {
		return "", false
	}
	v, ok := r.current[name]
	return v, ok
}

// NextSection advances to the next record, skipping leading blank lines
// between records. Malformed continuation lines (whitespace-prefixed with
// no preceding field) are ignored rather than aborting the parse.
func (r *Reader) NextSection() bool {
	if r.done {
		return false
	}

	fields := make(map[string]string)
	var lastKey string
	sawField := false

	line := r.pending
	r.pending = ""
	haveLine := line != ""

	for {
		if !haveLine {
			if !r.scanner.Scan() {
				r.done = true
				break
			}
			line = r.scanner.Text()
		}
		haveLine = false

		if strings.TrimSpace(line) == "" {
			if sawField {
				break
			}
			continue
		}

		if isContinuation(line) {
			if lastKey != "" {
				cont := strings.TrimLeft(line, " \t")
				fields[lastKey] = fields[lastKey] + "\n" + cont
			}
			continue
		}

		key, value, ok := splitField(line)
		if !ok {
			continue
		}
		fields[key] = value
		lastKey = key
		sawField = true
	}

	if !sawField {
		r.current = nil
		return false
	}

	r.current = fields
	return true
}

func isContinuation(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func splitField(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx == -1 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(line[idx+1:])
	return key, value, true
}
