package msatools

import (
	"fmt"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/msa"
)

// Dim picks rows (sequences) or columns (positions) for Occupancy.
type Dim int

const (
	DimRows Dim = iota // one value per sequence
	DimCols            // one value per column
)

// Occupancy counts the letters, that is the non-gap characters, in each
// sequence or each column. Unless count is set, the counts are divided by
// the number of columns (for rows) or sequences (for columns), giving a
// fraction in [0, 1]. occ must have one entry per row or column.
func Occupancy(a *msa.Alignment, occ []float64, dim Dim, count bool) error {
	var want int
	var divisor float64
	switch dim {
	case DimRows:
		want, divisor = a.Number(), float64(a.Length())
	case DimCols:
		want, divisor = a.Length(), float64(a.Number())
	default:
		return fmt.Errorf("occupancy: unknown dimension %d", dim)
	}
	if len(occ) != want {
		return fmt.Errorf("%w: occupancy has %d entries, want %d", ErrShape, len(occ), want)
	}
	for i := range occ {
		occ[i] = 0
	}
	for i := 0; i < a.Number(); i++ {
		for j, c := range a.Row(i) {
			if !alphabet.IsLetter(c) {
				continue
			}
			if dim == DimRows {
				occ[i]++
			} else {
				occ[j]++
			}
		}
	}
	if !count && divisor > 0 {
		for i := range occ {
			occ[i] /= divisor
		}
	}
	return nil
}
