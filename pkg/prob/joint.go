package prob

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrew-torda/msastat/pkg/alphabet"
)

// Joint is the probability of seeing symbol a in one column and b in
// another, Joint[a][b]. It is a plain array, so each worker can keep its
// own on the stack.
type Joint [alphabet.NumChars][alphabet.NumChars]float64

// ambPairs is the order in which the ambiguous x ambiguous cells are
// resolved. The order only changes the rounding, not the result.
var ambPairs = [16][2]uint8{
	{alphabet.X, alphabet.X}, {alphabet.X, alphabet.B}, {alphabet.X, alphabet.J}, {alphabet.X, alphabet.Z},
	{alphabet.B, alphabet.B}, {alphabet.B, alphabet.X}, {alphabet.B, alphabet.J}, {alphabet.B, alphabet.Z},
	{alphabet.Z, alphabet.Z}, {alphabet.Z, alphabet.X}, {alphabet.Z, alphabet.J}, {alphabet.Z, alphabet.B},
	{alphabet.J, alphabet.J}, {alphabet.J, alphabet.X}, {alphabet.J, alphabet.B}, {alphabet.J, alphabet.Z},
}

// Zero clears every cell.
func (j *Joint) Zero() { *j = Joint{} }

// Merge does for a pair of columns what Vector.Merge does for one.
// Cells where both symbols are ambiguous go first and are spread over the
// product of their targets, so X,X is split 400 ways and B,J 4 ways.
// Then every unambiguous symbol is swept against each ambiguity code, in
// the row and then the column direction. Afterwards the rows and columns
// of B, J, X and Z are zero and the total is unchanged.
func (j *Joint) Merge() {
	for _, p := range ambPairs {
		r, c := p[0], p[1]
		jp := j[r][c]
		if jp == 0 {
			continue
		}
		rt, ct := targets(r), targets(c)
		jp /= float64(len(rt) * len(ct))
		for _, a := range rt {
			for _, b := range ct {
				j[a][b] += jp
			}
		}
		j[r][c] = 0
	}

	for _, k := range alphabet.Unambiguous {
		for _, amb := range [...]uint8{alphabet.B, alphabet.J, alphabet.Z, alphabet.X} {
			tgt := targets(amb)
			if jp := j[k][amb]; jp != 0 {
				jp /= float64(len(tgt))
				for _, t := range tgt {
					j[k][t] += jp
				}
				j[k][amb] = 0
			}
			if jp := j[amb][k]; jp != 0 {
				jp /= float64(len(tgt))
				for _, t := range tgt {
					j[t][k] += jp
				}
				j[amb][k] = 0
			}
		}
	}
}

// Entropy is the Shannon entropy of the joint distribution, using
// natural logs and skipping empty cells.
func (j *Joint) Entropy() (ent float64) {
	for a := range j {
		for _, p := range j[a] {
			if p > 0 {
				ent -= p * math.Log(p)
			}
		}
	}
	return ent
}

// Sum adds up all the cells.
func (j *Joint) Sum() (s float64) {
	for a := range j {
		for _, p := range j[a] {
			s += p
		}
	}
	return s
}

// String prints the table scaled by ten, with row sums on the right and
// column sums underneath.
func (j *Joint) String() string {
	var b strings.Builder
	var csum [alphabet.NumChars]float64
	var total float64
	b.WriteString("  ")
	for i := uint8(0); i < alphabet.NumChars; i++ {
		fmt.Fprintf(&b, "%c_%-2d ", alphabet.Letter(i), i)
	}
	b.WriteByte('\n')
	for a := range j {
		var rsum float64
		fmt.Fprintf(&b, "%c ", alphabet.Letter(uint8(a)))
		for c, p := range j[a] {
			fmt.Fprintf(&b, "%.2f ", p*10)
			rsum += p
			csum[c] += p
			total += p
		}
		fmt.Fprintf(&b, "%.2f\n", rsum*10)
	}
	b.WriteString("+ ")
	for _, s := range csum {
		fmt.Fprintf(&b, "%.2f ", s*10)
	}
	fmt.Fprintf(&b, "%.2f", total)
	return b.String()
}
