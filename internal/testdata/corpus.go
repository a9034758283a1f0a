/*
Package testdata locates and reads translation corpus files for tests.

A corpus file holds one translation per line:

    text ; cells  # comment

Lines starting with '#' and empty lines are skipped.
*/
package testdata

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// CorpusPath returns the path for the given corpus file.
func CorpusPath(file string) string {
	_, pkgdir, _, ok := runtime.Caller(0)
	if !ok {
		panic("no debug info")
	}
	return filepath.Join(filepath.Dir(pkgdir), "corpus", file)
}

// CorpusReader returns a reader for the given corpus file.
func CorpusReader(file string) (io.Reader, error) {
	data, err := os.ReadFile(CorpusPath(file))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Corpus scans a corpus file line by line.
type Corpus struct {
	in       io.Closer
	scanner  *bufio.Scanner
	line     int
	text     string
	expected string
	comment  string
	err      error
}

// OpenCorpus opens a corpus file. Errors are reported to t, and nil is
// returned.
func OpenCorpus(file string, t *testing.T) *Corpus {
	f, err := os.Open(CorpusPath(file))
	if err != nil {
		t.Errorf("cannot load corpus %s: %v", file, err)
		return nil
	}
	return &Corpus{in: f, scanner: bufio.NewScanner(f)}
}

// Scan advances to the next translation. It returns false at the end of the
// file or on a malformed line.
func (c *Corpus) Scan() bool {
	for c.scanner.Scan() {
		c.line++
		line := strings.TrimSpace(c.scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		c.comment = ""
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line, c.comment = line[:i], strings.TrimSpace(line[i+1:])
		}
		parts := strings.Split(line, ";")
		if len(parts) != 2 {
			c.err = fmt.Errorf("line %d: expected 'text ; cells', have %q", c.line, line)
			return false
		}
		c.text, c.expected = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		return true
	}
	return false
}

// Text returns the text side of the current line.
func (c *Corpus) Text() string {
	return c.text
}

// Cells returns the braille side of the current line, in dot notation.
func (c *Corpus) Cells() string {
	return c.expected
}

// Comment returns the comment of the current line, if any.
func (c *Corpus) Comment() string {
	return c.comment
}

// Line returns the line number of the current line.
func (c *Corpus) Line() int {
	return c.line
}

func (c *Corpus) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.scanner.Err()
}

func (c *Corpus) Close() {
	_ = c.in.Close()
}
