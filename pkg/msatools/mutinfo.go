package msatools

import (
	"context"
	"math"

	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/prob"
)

// calcMI is the mutual information for one pair of columns.
// Empty cells are skipped and so are cells where the ratio is exactly
// one.
func calcMI(joint *prob.Joint, pi, pj *prob.Vector) (mi float64) {
	for k := range joint {
		jrow := &joint[k]
		for l, jp := range jrow {
			if jp > 0 {
				inside := jp / pi[k] / pj[l]
				if inside != 1 {
					mi += jp * math.Log(inside)
				}
			}
		}
	}
	return mi
}

// calcNormMI divides by the joint entropy. If that is zero, so is the
// mutual information, and we return zero rather than NaN.
func calcNormMI(joint *prob.Joint, pi, pj *prob.Vector) float64 {
	h := joint.Entropy()
	if h == 0 {
		return 0
	}
	return calcMI(joint, pi, pj) / h
}

// omesStat returns the OMES calculator for n sequences. A cell is skipped
// if it is empty or its expected value is zero.
func omesStat(n int) pairStat {
	fn := float64(n)
	return func(joint *prob.Joint, pi, pj *prob.Vector) (omes float64) {
		for k := range joint {
			jrow := &joint[k]
			for l, jp := range jrow {
				if jp > 0 {
					inside := pi[k] * pj[l]
					if inside != 0 {
						d := jp - inside
						omes += fn * d * d / inside
					}
				}
			}
		}
		return omes
	}
}

// MutInfo fills out, length x length, with the mutual information of
// every pair of columns. Options used are Ambiguity, Turbo, Norm and Debug.
func MutInfo(ctx context.Context, a *msa.Alignment, out []float64, opts *Options) error {
	opts = orDefault(opts)
	stat := calcMI
	if opts.Norm {
		stat = calcNormMI
	}
	return runPairwise(ctx, a, out, opts, "mutual information", stat)
}

// OMES fills out, length x length, with observed minus expected squared
// for every pair of columns. Options used are Ambiguity, Turbo and Debug.
func OMES(ctx context.Context, a *msa.Alignment, out []float64, opts *Options) error {
	opts = orDefault(opts)
	return runPairwise(ctx, a, out, opts, "OMES", omesStat(a.Number()))
}
