// 17 Oct 2026

// Package prob holds the probability tables for alignment columns.
// A Vector is the distribution of symbols in one column, a Joint is the
// distribution of symbol pairs over two columns. Both are indexed by
// alphabet slot, so the gap is at 0 and the ambiguity codes B, J, X, Z
// have their own bins until Merge moves their mass onto the residues they
// stand for.
package prob

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/msastat/pkg/alphabet"
)

// Vector is a count or probability for each alphabet slot.
type Vector [alphabet.NumChars]float64

// targets returns the slots an ambiguity code is spread over. It returns
// nil for anything else.
func targets(i uint8) []uint8 {
	switch i {
	case alphabet.B:
		return []uint8{alphabet.D, alphabet.N}
	case alphabet.J:
		return []uint8{alphabet.I, alphabet.L}
	case alphabet.Z:
		return []uint8{alphabet.E, alphabet.Q}
	case alphabet.X:
		return alphabet.Twenty[:]
	}
	return nil
}

// Add increments slot i by w.
func (v *Vector) Add(i uint8, w float64) { v[i] += w }

// Counts tallies a column of alphabet slots, one per sequence.
func Counts(col []uint8) (v Vector) {
	for _, c := range col {
		v[c]++
	}
	return v
}

// Probs is like Counts, but each sequence adds 1/len(col), so the
// result sums to one.
func Probs(col []uint8) (v Vector) {
	if len(col) == 0 {
		return v
	}
	incr := 1. / float64(len(col))
	for _, c := range col {
		v[c] += incr
	}
	return v
}

// Merge moves the mass in the B, J, Z and X bins onto the residues they
// may stand for and zeroes them. B, J and Z are split in two, X is spread
// evenly over the standard twenty. It works equally on counts and
// probabilities. Empty bins are left alone.
func (v *Vector) Merge() {
	for _, amb := range [...]uint8{alphabet.B, alphabet.J, alphabet.Z, alphabet.X} {
		m := v[amb]
		if m == 0 {
			continue
		}
		tgt := targets(amb)
		m /= float64(len(tgt))
		for _, t := range tgt {
			v[t] += m
		}
		v[amb] = 0
	}
}

// Sum adds up all the bins.
func (v *Vector) Sum() (s float64) {
	for _, x := range v {
		s += x
	}
	return s
}

// String gives one line with the bins scaled by ten and the sum, which is
// what you want to look at when debugging.
func (v *Vector) String() string {
	var b strings.Builder
	for _, x := range v {
		fmt.Fprintf(&b, "%.2f ", x*10)
	}
	fmt.Fprintf(&b, "%.2f", v.Sum())
	return b.String()
}
