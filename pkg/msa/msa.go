// 17 Oct 2026

// Package msa wraps a multiple sequence alignment as a read-only block of
// bytes. Rows are sequences, columns are alignment positions. The bytes
// are whatever the caller gave us. They are only turned into alphabet
// slots on the way out, by Column and Transpose.
package msa

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/msastat/pkg/alphabet"
)

// ErrShape says the dimensions do not match the data.
var ErrShape = errors.New("alignment shape does not match data")

// Alignment is a number x length block of characters, stored row after
// row with no padding.
type Alignment struct {
	seq    []byte
	number int // number of sequences
	length int // number of columns
}

// New wraps buf, which must hold exactly number * length bytes. The
// buffer is not copied and must not be changed while the alignment is in
// use.
func New(buf []byte, number, length int) (*Alignment, error) {
	if number < 0 || length < 0 {
		return nil, fmt.Errorf("%w: negative size %d x %d", ErrShape, number, length)
	}
	if length != 0 && number > len(buf)/length || number*length != len(buf) {
		return nil, fmt.Errorf("%w: %d x %d but %d bytes", ErrShape, number, length, len(buf))
	}
	return &Alignment{seq: buf, number: number, length: length}, nil
}

// FromRows copies a set of equal length strings into a new alignment.
func FromRows(rows []string) (*Alignment, error) {
	if len(rows) == 0 {
		return New(nil, 0, 0)
	}
	length := len(rows[0])
	buf := make([]byte, 0, len(rows)*length)
	for i, r := range rows {
		if len(r) != length {
			return nil, fmt.Errorf("%w: row %d has length %d, first row %d", ErrShape, i, len(r), length)
		}
		buf = append(buf, r...)
	}
	return New(buf, len(rows), length)
}

// Number is the number of sequences.
func (a *Alignment) Number() int { return a.number }

// Length is the number of columns.
func (a *Alignment) Length() int { return a.length }

// Bytes gives the underlying buffer. Do not write to it.
func (a *Alignment) Bytes() []byte { return a.seq }

// Row returns sequence i.
func (a *Alignment) Row(i int) []byte {
	return a.seq[i*a.length : (i+1)*a.length : (i+1)*a.length]
}

// At returns the raw character for sequence row at column col.
func (a *Alignment) At(row, col int) byte { return a.seq[row*a.length+col] }

// Slot returns the alphabet slot for sequence row at column col.
func (a *Alignment) Slot(row, col int) uint8 {
	return alphabet.Index(a.seq[row*a.length+col])
}

// Column decodes column col into dst, one alphabet slot per sequence.
// If dst is too short, a new slice is made. The filled slice is returned.
func (a *Alignment) Column(col int, dst []uint8) []uint8 {
	if cap(dst) < a.number {
		dst = make([]uint8, a.number)
	}
	dst = dst[:a.number]
	for k, off := 0, col; k < a.number; k, off = k+1, off+a.length {
		dst[k] = alphabet.Index(a.seq[off])
	}
	return dst
}

// Transpose decodes the whole alignment into a length x number table of
// alphabet slots, so row i of the result is column i of the alignment.
// It walks the input in storage order.
func (a *Alignment) Transpose() *matrix.BMatrix2d {
	tr := matrix.NewBMatrix2d(a.length, a.number)
	for k := 0; k < a.number; k++ {
		for i, c := range a.Row(k) {
			tr.Mat[i][k] = alphabet.Index(c)
		}
	}
	return tr
}
