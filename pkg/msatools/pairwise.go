package msatools

import (
	"context"

	"github.com/andrew-torda/matrix"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/prob"
)

// pairStat turns a joint table and the two column probabilities into one
// number.
type pairStat func(joint *prob.Joint, pi, pj *prob.Vector) float64

// pairwise is the state shared by all workers. Once prime has run,
// nothing in here but out is written, and each out cell has one writer.
type pairwise struct {
	a     *msa.Alignment
	opts  *Options
	probs *prob.Table       // one row of NumChars per column
	trans *matrix.BMatrix2d // column cache, nil in the direct strategy
	out   []float64
	stat  pairStat
}

// orDefault lets callers pass nil options.
func orDefault(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}

// runPairwise checks the sizes, picks a strategy, fills the column
// probabilities and then does every pair.
func runPairwise(ctx context.Context, a *msa.Alignment, out []float64,
	opts *Options, name string, stat pairStat) error {
	if err := checkSquare(a, out); err != nil {
		return err
	}
	if err := opts.checkWork(a); err != nil {
		return err
	}
	pw := &pairwise{a: a, opts: opts, out: out, stat: stat}
	strategy := opts.Strategy(a, 1)
	log.Infof("%s: %d sequences, %d columns, %s strategy, %d workers",
		name, a.Number(), a.Length(), strategy, opts.workers())
	pw.prime(strategy)
	return forRows(ctx, a.Length()-1, opts.workers(), pw.row)
}

// prime works out the probabilities for every column and, in the cached
// strategy, decodes every column. It has to finish before any pair is
// looked at.
func (pw *pairwise) prime(strategy Strategy) {
	a := pw.a
	pw.probs = prob.NewTable(a.Length(), alphabet.NumChars)
	if strategy == Cached {
		pw.trans = a.Transpose()
	}
	var col []uint8
	for i := 0; i < a.Length(); i++ {
		if pw.trans != nil {
			col = pw.trans.Mat[i]
		} else {
			col = a.Column(i, col)
		}
		*pw.probs.Vector(i) = prob.Probs(col)
	}
	if pw.opts.Debug {
		log.Debugf("Probability matrix\n%s", pw.probs)
	}
	if pw.opts.Ambiguity {
		for i := 0; i < a.Length(); i++ {
			pw.probs.Vector(i).Merge()
		}
		if pw.opts.Debug {
			log.Debugf("Probability matrix, ambiguity merged\n%s", pw.probs)
		}
	}
}

// row does all the pairs (i, j) with j > i. Each call has its own joint
// table, so rows can run at the same time.
func (pw *pairwise) row(i int) error {
	var joint prob.Joint
	a := pw.a
	length, number := a.Length(), a.Number()
	incr := 1. / float64(number)
	var ci []uint8
	if pw.trans != nil {
		ci = pw.trans.Mat[i]
	} else {
		ci = a.Column(i, nil) // decoded once, used for every j
	}
	pi := pw.probs.Vector(i)
	for j := i + 1; j < length; j++ {
		joint.Zero()
		if pw.trans != nil {
			cj := pw.trans.Mat[j]
			for k, c := range ci {
				joint[c][cj[k]] += incr
			}
		} else {
			for k, c := range ci {
				joint[c][a.Slot(k, j)] += incr
			}
		}
		if pw.opts.Debug {
			log.Debugf("Joint probability matrix (%d,%d)\n%s", i, j, &joint)
		}
		if pw.opts.Ambiguity {
			joint.Merge()
			if pw.opts.Debug {
				log.Debugf("Joint probability matrix (%d,%d), ambiguity merged\n%s", i, j, &joint)
			}
		}
		v := pw.stat(&joint, pi, pw.probs.Vector(j))
		pw.out[i*length+j] = v
		pw.out[j*length+i] = v
	}
	return nil
}

// forRows calls fn for rows 0 to n-1, spread over nworker goroutines.
// It stops handing out rows as soon as one fails or ctx is cancelled.
func forRows(parent context.Context, n, nworker int, fn func(i int) error) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(nworker)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return parent.Err()
}
