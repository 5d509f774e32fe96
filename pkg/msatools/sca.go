package msatools

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/prob"
)

// background is the reference frequency of each residue. Slots that are
// not scored are zero.
var background = prob.Vector{0., 0.073, 0., 0.025, 0.05, 0.061, 0.042, 0.072,
	0.023, 0.053, 0., 0.064, 0.089, 0.023, 0.043, 0., 0.052, 0.04, 0.052,
	0.073, 0.056, 0., 0.063, 0.013, 0., 0.033, 0.}

// scored are the slots which get weighted, the gap and the twenty.
var scored = [21]uint8{0, 1, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13,
	14, 16, 17, 18, 19, 20, 22, 23, 25}

// scaWeights turns the letters in one column into weighted probabilities.
// Gaps are not counted. After merging ambiguity codes, each scored slot
// with probability p and background q gets phi = |ln(p(1-q) / ((1-p)q))|
// and becomes p phi phi. The sum of squares is taken half way, at p phi,
// and used to normalise. phi is zero if p or q is zero, or if p is one.
// Finally B, J, Z and X get the mean of the residues they stand for, so a
// sequence with an ambiguity code can be looked up like any other.
func scaWeights(col []uint8) (w prob.Vector) {
	if len(col) == 0 {
		return w
	}
	incr := 1. / float64(len(col))
	for _, c := range col {
		if c != alphabet.Gap {
			w[c] += incr
		}
	}
	w.Merge()

	var sum float64
	for _, s := range scored {
		p, q := w[s], background[s]
		var phi float64
		if p != 0 && q != 0 && p < 1 {
			phi = math.Abs(math.Log(p * (1 - q) / (1 - p) / q))
		}
		p *= phi
		sum += p * p
		w[s] = p * phi
	}
	if sum > 0 {
		sum = math.Sqrt(sum)
		for _, s := range scored {
			w[s] /= sum
		}
	}

	w[alphabet.B] = (w[alphabet.D] + w[alphabet.N]) / 2
	w[alphabet.J] = (w[alphabet.I] + w[alphabet.L]) / 2
	w[alphabet.Z] = (w[alphabet.E] + w[alphabet.Q]) / 2
	var x float64
	for _, t := range alphabet.Twenty {
		x += w[t]
	}
	w[alphabet.X] = x / 20
	return w
}

// scaMatrix holds what the SCA workers share.
type scaMatrix struct {
	a     *msa.Alignment
	wprob *prob.Table // weighted probabilities, one row per column
	wx    *prob.Table // per-sequence weights, one row per column, nil if direct
	mean  []float64   // mean weight of each column
	out   []float64
}

// prime calculates the weighted probabilities, and per-sequence weights
// and column means.
func (sm *scaMatrix) prime(strategy Strategy, debug bool) {
	a := sm.a
	number, length := a.Number(), a.Length()
	sm.wprob = prob.NewTable(length, alphabet.NumChars)
	sm.mean = make([]float64, length)
	if strategy == Cached {
		sm.wx = prob.NewTable(length, number)
	}
	var col []uint8
	for i := 0; i < length; i++ {
		col = a.Column(i, col)
		w := sm.wprob.Vector(i)
		*w = scaWeights(col)
		var sum float64
		if sm.wx != nil {
			x := sm.wx.Mat[i]
			for k, c := range col {
				x[k] = w[c]
			}
			sum = floats.Sum(x)
		} else {
			for _, c := range col {
				sum += w[c]
			}
		}
		if number > 0 {
			sm.mean[i] = sum / float64(number)
		}
	}
	if debug {
		log.Debugf("Weighted probability matrix\n%s", sm.wprob)
	}
}

// row does SCA for (i, j), j > i.
func (sm *scaMatrix) row(i int) error {
	a := sm.a
	number, length := a.Number(), a.Length()
	if number == 0 {
		return nil
	}
	fn := float64(number)
	var ci []uint8
	if sm.wx == nil {
		ci = a.Column(i, nil)
	}
	wi := sm.wprob.Vector(i)
	for j := i + 1; j < length; j++ {
		var sum float64
		if sm.wx != nil {
			sum = floats.Dot(sm.wx.Mat[i], sm.wx.Mat[j])
		} else {
			wj := sm.wprob.Vector(j)
			for k, c := range ci {
				sum += wi[c] * wj[a.Slot(k, j)]
			}
		}
		v := math.Abs(sum/fn - sm.mean[i]*sm.mean[j])
		sm.out[i*length+j] = v
		sm.out[j*length+i] = v
	}
	return nil
}

// SCA fills out, length x length, with the statistical coupling of every
// pair of columns. This is the absolute covariance, over sequences, of the
// weights of the residues at the two positions. Ambiguity codes are
// always merged, whatever opts says. Options used are Turbo and Debug.
func SCA(ctx context.Context, a *msa.Alignment, out []float64, opts *Options) error {
	opts = orDefault(opts)
	if err := checkSquare(a, out); err != nil {
		return err
	}
	if err := opts.checkWork(a); err != nil {
		return err
	}
	strategy := opts.Strategy(a, 8)
	log.Infof("SCA: %d sequences, %d columns, %s strategy, %d workers",
		a.Number(), a.Length(), strategy, opts.workers())
	sm := &scaMatrix{a: a, out: out}
	sm.prime(strategy, opts.Debug)
	return forRows(ctx, a.Length()-1, opts.workers(), sm.row)
}
