// Package brokenio wraps readers and writers so they fail. It is for
// testing what the alignment reader and the output writers do when the
// file system lets them down.
// When a Reader fails, it trashes the second part of what it read and
// returns an error. When a Writer fails, it keeps on failing.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is what a Writer returns once it has stopped working.
var ErrBroken = errors.New("brokenio: artificial write failure")

// A Reader is modelled on the readers in the standard library, but with
// variables controlling the frequency of errors. probFail is the fraction
// of reads that fail, so 0.05 means failure in 5 % of the cases.
type Reader struct {
	rdr      io.Reader // Wrapped reader
	rnd      *rand.Rand
	probFail float32
	fracFail float32 // fraction of the bytes trashed on failure
	nCalled  int
	nByte    int
}

// NewReader wraps rIn. The seed makes the failures reproducible.
func NewReader(rIn io.Reader, seed int64) *Reader {
	return &Reader{rdr: rIn, rnd: rand.New(rand.NewSource(seed)), fracFail: 0.5}
}

// SetFracFail sets the fraction of the bytes which will be trashed.
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbFail sets the probability of a read failing. It must be between
// zero and one. We do not check.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// NByte is the number of bytes that came through, trashed or not.
func (r *Reader) NByte() int { return r.nByte }

// trashSlice zeroes the last frac of p and says how much is left.
func trashSlice(p []byte, frac float32) int {
	nkeep := int(float32(len(p)) * (1. - frac))
	for i := nkeep; i < len(p); i++ {
		p[i] = 0
	}
	return nkeep
}

// Read wraps the original reader and counts the data that has gone
// through.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.rdr.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.rnd.Float32() < r.probFail && r.fracFail > 0 {
		m := trashSlice(p[:n], r.fracFail)
		return m, fmt.Errorf("brokenio: wiped out last %d of %d bytes on read %d", n-m, n, r.nCalled)
	}
	return n, err
}

// Writer passes on the first limit bytes and then refuses everything.
type Writer struct {
	w     io.Writer
	limit int
	n     int
}

// NewWriter wraps w so it breaks after limit bytes.
func NewWriter(w io.Writer, limit int) *Writer { return &Writer{w: w, limit: limit} }

// Write writes as much of p as fits under the limit.
func (w *Writer) Write(p []byte) (int, error) {
	room := w.limit - w.n
	if room >= len(p) {
		n, err := w.w.Write(p)
		w.n += n
		return n, err
	}
	if room < 0 {
		room = 0
	}
	n, err := w.w.Write(p[:room])
	w.n += n
	if err == nil {
		err = ErrBroken
	}
	return n, err
}
