// 17 Oct 2026

// Package msatools calculates column and column-pair statistics over a
// multiple sequence alignment: entropy, mutual information, OMES, SCA and
// occupancy.
//
// The caller owns the output. Each function is given a slice of the right
// size and fills it. Pair statistics go into a length x length slice in row
// major order. Both (i,j) and (j,i) are set and the diagonal is not
// touched.
//
// Pair statistics come in two flavours, picked once per call. The cached
// strategy ("turbo") decodes the whole alignment column by column before
// starting and reads every pair from there. The direct strategy decodes
// from the raw alignment as it goes. They give the same numbers. The
// cached one needs number x length bytes (eight times that for SCA), so
// when that is over Options.TurboLimit we quietly go direct.
package msatools

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"runtime"

	"github.com/op/go-logging"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/msa"
)

var log = logging.MustGetLogger("msatools")

var (
	// ErrShape means an output slice has the wrong length.
	ErrShape = errors.New("output buffer has wrong size")
	// ErrNoMemory means the working space for a calculation cannot be
	// had. Nothing is written.
	ErrNoMemory = errors.New("out of memory")
)

// DefaultTurboLimit is the default budget for the column cache, 1 GiB.
const DefaultTurboLimit = 1 << 30

// Options control the calculations. Not every option means something to
// every statistic.
type Options struct {
	Ambiguity  bool  // spread B, J, X, Z over the residues they stand for
	OmitGaps   bool  // entropy: leave gaps out of the denominator
	Turbo      bool  // allow the cached strategy for pair statistics
	Norm       bool  // mutual information: divide by the joint entropy
	Debug      bool  // log probability tables at debug level, forces one worker
	Workers    int   // goroutines for the pair loop, <= 0 means GOMAXPROCS
	TurboLimit int64 // bytes allowed for the column cache, <= 0 means DefaultTurboLimit
	MemLimit   int64 // bytes allowed for other working space, <= 0 means no limit
}

// DefaultOptions has ambiguity handling and turbo on, everything else off.
func DefaultOptions() *Options {
	return &Options{Ambiguity: true, Turbo: true, TurboLimit: DefaultTurboLimit}
}

// Strategy says how pair statistics get at the columns.
type Strategy int

const (
	Direct Strategy = iota // decode from the alignment for every pair
	Cached                 // decode everything once, up front
)

func (s Strategy) String() string {
	if s == Cached {
		return "cached"
	}
	return "direct"
}

// workers returns how many goroutines to use.
func (o *Options) workers() int {
	if o.Debug {
		return 1
	}
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// mulSize multiplies sizes, and says if the result overflows.
func mulSize(a, b, c int) (int, bool) {
	if a < 0 || b < 0 || c < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, false
	}
	hi, lo = bits.Mul64(lo, uint64(c))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Strategy picks the way a pair statistic will be calculated. elemSize is
// the number of bytes the cache needs per sequence per column.
func (o *Options) Strategy(a *msa.Alignment, elemSize int) Strategy {
	if !o.Turbo {
		return Direct
	}
	limit := o.TurboLimit
	if limit <= 0 {
		limit = DefaultTurboLimit
	}
	need, ok := mulSize(a.Number(), a.Length(), elemSize)
	if !ok || int64(need) > limit {
		log.Noticef("column cache would need %d x %d x %d bytes, over limit %d, not using turbo",
			a.Length(), a.Number(), elemSize, limit)
		return Direct
	}
	return Cached
}

// checkWork makes sure the working tables for a pairwise calculation can be
// had. Every column needs a probability row and every worker needs a joint
// table and a decoded column.
func (o *Options) checkWork(a *msa.Alignment) error {
	probs, ok := mulSize(a.Length(), alphabet.NumChars, 8)
	if !ok {
		return fmt.Errorf("%w: probability table for %d columns", ErrNoMemory, a.Length())
	}
	perWorker := alphabet.NumChars*alphabet.NumChars*8 + a.Number()
	scratch, ok := mulSize(o.workers(), perWorker, 1)
	if !ok || probs > math.MaxInt-scratch {
		return fmt.Errorf("%w: scratch space for %d workers", ErrNoMemory, o.workers())
	}
	if o.MemLimit > 0 && int64(probs+scratch) > o.MemLimit {
		return fmt.Errorf("%w: need %d bytes, limit %d", ErrNoMemory, probs+scratch, o.MemLimit)
	}
	return nil
}

// checkSquare checks out can hold a length x length matrix.
func checkSquare(a *msa.Alignment, out []float64) error {
	n, ok := mulSize(a.Length(), a.Length(), 1)
	if !ok {
		return fmt.Errorf("%w: %d columns squared", ErrNoMemory, a.Length())
	}
	if len(out) != n {
		return fmt.Errorf("%w: have %d, want %d x %d", ErrShape, len(out), a.Length(), a.Length())
	}
	return nil
}
