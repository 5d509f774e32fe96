package msatools

import (
	"fmt"
	"math"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/prob"
)

// columnEntropy is the Shannon entropy of one column of counts, with
// natural logs. If omitGaps is set, gaps are left out and the letters are
// taken as fractions of the non-gap sequences. Otherwise the gap fraction
// is a term of its own. A column with nothing to count has entropy zero.
func columnEntropy(counts *prob.Vector, number int, omitGaps bool) float64 {
	var shannon float64
	gaps := counts[alphabet.Gap]
	denom := float64(number)
	if omitGaps {
		denom -= gaps
	} else if gaps > 0 {
		p := gaps / float64(number)
		shannon += p * math.Log(p)
	}
	if denom > 0 {
		for _, c := range counts[1:] {
			if c > 0 {
				p := c / denom
				shannon += p * math.Log(p)
			}
		}
	}
	if shannon == 0 {
		return 0
	}
	return -shannon
}

// Entropy fills ent with the entropy of each column. ent must have one
// entry per column. Options used are Ambiguity and OmitGaps.
func Entropy(a *msa.Alignment, ent []float64, opts *Options) error {
	opts = orDefault(opts)
	if len(ent) != a.Length() {
		return fmt.Errorf("%w: entropy has %d entries, alignment %d columns", ErrShape, len(ent), a.Length())
	}
	var col []uint8
	for i := range ent {
		col = a.Column(i, col)
		counts := prob.Counts(col)
		if opts.Ambiguity {
			counts.Merge()
		}
		ent[i] = columnEntropy(&counts, a.Number(), opts.OmitGaps)
	}
	return nil
}
