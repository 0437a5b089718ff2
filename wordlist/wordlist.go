// Package wordlist reads newline-delimited dictionaries: one lowercase word
// per line, letters a-z only, no blank lines.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed line")

// LineError reports a line that is not a valid word.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// Valid reports whether word is non-empty and made only of a-z.
func Valid(word string) bool {
	return check(word) == ""
}

func check(word string) string {
	if word == "" {
		return "empty word"
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return fmt.Sprintf("byte %q at offset %d is not a-z", word[i], i)
		}
	}
	return ""
}

// Scan calls fn for every word in r with its 1-based line number. A trailing
// carriage return is dropped. Scanning stops at the first malformed line or
// the first error returned by fn.
func Scan(r io.Reader, fn func(line int, word string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if n := len(text); n > 0 && text[n-1] == '\r' {
			text = text[:n-1]
		}
		if reason := check(text); reason != "" {
			return &LineError{Line: line, Text: text, Reason: reason}
		}
		if err := fn(line, text); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ReadAll returns every word in r.
func ReadAll(r io.Reader) ([]string, error) {
	var words []string
	err := Scan(r, func(_ int, word string) error {
		words = append(words, word)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// File is a memory-mapped word list.
type File struct {
	r    *mmap.ReaderAt
	path string
}

// Open maps the word list at path.
func Open(path string) (*File, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	return &File{r: r, path: path}, nil
}

// Path returns the file the list was opened from.
func (f *File) Path() string {
	return f.path
}

// Size returns the length of the file in bytes.
func (f *File) Size() int {
	return f.r.Len()
}

// Each calls fn for every word in the file. See Scan.
func (f *File) Each(fn func(line int, word string) error) error {
	return Scan(io.NewSectionReader(f.r, 0, int64(f.r.Len())), fn)
}

// Words returns every word in the file.
func (f *File) Words() ([]string, error) {
	return ReadAll(io.NewSectionReader(f.r, 0, int64(f.r.Len())))
}

// Close unmaps the file.
func (f *File) Close() error {
	return f.r.Close()
}
