package msa

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadFile reads a raw alignment, one sequence per line. Blank lines are
// skipped, trailing carriage returns are dropped and every remaining line
// must be the same length. There are no comments or names. This is just
// the character block written out as text.
// The file is mapped rather than read. Empty files cannot be mapped, so
// they go through the normal path.
func ReadFile(fname string) (*Alignment, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return Read(fp)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	a, err := parseRows(mm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return a, nil
}

// Read is ReadFile for anything that is not a file, such as standard input.
func Read(rdr io.Reader) (*Alignment, error) {
	buf, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	return parseRows(buf)
}

// parseRows copies lines out of data into a fresh block, so the result
// does not point into a mapping which is about to go away.
func parseRows(data []byte) (*Alignment, error) {
	var buf []byte
	number, length := 0, -1
	for lnum := 1; len(data) > 0; lnum++ {
		line := data
		if ndx := bytes.IndexByte(data, '\n'); ndx != -1 {
			line, data = data[:ndx], data[ndx+1:]
		} else {
			data = nil
		}
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if length == -1 {
			length = len(line)
		} else if len(line) != length {
			return nil, fmt.Errorf("%w: line %d has length %d, expected %d", ErrShape, lnum, len(line), length)
		}
		buf = append(buf, line...)
		number++
	}
	if number == 0 {
		return nil, fmt.Errorf("%w: no sequences found", ErrShape)
	}
	return New(buf, number, length)
}
