// 27 april 2020, 17 Oct 2026

// Package msastat is the glue between the command line and the
// calculations. It reads an alignment, calculates one statistic, perhaps
// with the help of the result store, and writes it out.
package msastat

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/op/go-logging"
	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/msatools"
	"github.com/andrew-torda/msastat/pkg/store"
)

var log = logging.MustGetLogger("msastat")

// Names of the statistics, as used on the command line and in the store.
const (
	Entropy   = "entropy"
	MutInfo   = "mutinfo"
	OMES      = "omes"
	SCA       = "sca"
	Occupancy = "occupancy"
)

// CmdFlag holds what the command line set.
type CmdFlag struct {
	Stat       string // one of the names above
	Ambiguity  bool   // spread B, J, X, Z over what they stand for
	OmitGaps   bool   // entropy: gaps are not part of the denominator
	Norm       bool   // normalise mutual information
	Turbo      bool   // allow the column cache
	TurboLimit int64  // bytes for the column cache
	Debug      bool   // log probability tables
	Workers    int    // goroutines, 0 for all of them
	Dim        string // occupancy: "rows" or "cols"
	Count      bool   // occupancy: counts, not fractions
	Chimera    string // entropy: write a chimera attribute file here
	HeatMap    string // pair statistics: also draw the matrix into this file
	Offset     int    // add this to residue numbers on output
	DB         string // result store, "" for none
	Time       bool   // print out run time
}

// Options turns the flags into calculation options.
func (flags *CmdFlag) Options() *msatools.Options {
	opts := msatools.DefaultOptions()
	opts.Ambiguity = flags.Ambiguity
	opts.OmitGaps = flags.OmitGaps
	opts.Norm = flags.Norm
	opts.Turbo = flags.Turbo
	if flags.TurboLimit > 0 {
		opts.TurboLimit = flags.TurboLimit
	}
	opts.Debug = flags.Debug
	opts.Workers = flags.Workers
	return opts
}

// settings describes the flags which change the numbers. It goes into the
// store key. Turbo and workers do not change results, so they are not
// here.
func (flags *CmdFlag) settings() string {
	switch flags.Stat {
	case Entropy:
		return fmt.Sprintf("ambiguity=%t omitgaps=%t", flags.Ambiguity, flags.OmitGaps)
	case MutInfo:
		return fmt.Sprintf("ambiguity=%t norm=%t", flags.Ambiguity, flags.Norm)
	case OMES:
		return fmt.Sprintf("ambiguity=%t", flags.Ambiguity)
	case Occupancy:
		return fmt.Sprintf("dim=%s count=%t", flags.Dim, flags.Count)
	}
	return ""
}

// dim converts the dimension name.
func dim(s string) (msatools.Dim, error) {
	switch s {
	case "rows":
		return msatools.DimRows, nil
	case "cols", "":
		return msatools.DimCols, nil
	}
	return 0, fmt.Errorf("unknown dimension %q, want rows or cols", s)
}

// square returns a zeroed length x length slice, or ErrNoMemory if that
// cannot be indexed.
func square(length int) ([]float64, error) {
	if length > 0 && length > math.MaxInt/length {
		return nil, msatools.ErrNoMemory
	}
	return make([]float64, length*length), nil
}

// calculate does the work for one statistic.
func calculate(ctx context.Context, flags *CmdFlag, a *msa.Alignment) (*store.Result, error) {
	opts := flags.Options()
	r := &store.Result{Stat: flags.Stat, Flags: flags.settings(), Created: time.Now()}
	var err error
	switch flags.Stat {
	case Entropy:
		r.Rows, r.Cols = 1, a.Length()
		r.Data = make([]float64, a.Length())
		err = msatools.Entropy(a, r.Data, opts)
	case MutInfo, OMES, SCA:
		r.Rows, r.Cols = a.Length(), a.Length()
		if r.Data, err = square(a.Length()); err != nil {
			break
		}
		switch flags.Stat {
		case MutInfo:
			err = msatools.MutInfo(ctx, a, r.Data, opts)
		case OMES:
			err = msatools.OMES(ctx, a, r.Data, opts)
		default:
			err = msatools.SCA(ctx, a, r.Data, opts)
		}
	case Occupancy:
		var d msatools.Dim
		if d, err = dim(flags.Dim); err != nil {
			break
		}
		r.Rows = 1
		if d == msatools.DimRows {
			r.Cols = a.Number()
		} else {
			r.Cols = a.Length()
		}
		r.Data = make([]float64, r.Cols)
		err = msatools.Occupancy(a, r.Data, d, flags.Count)
	default:
		err = fmt.Errorf("unknown statistic %q", flags.Stat)
	}
	if err != nil {
		return nil, fmt.Errorf("calculating %s: %w", flags.Stat, err)
	}
	return r, nil
}

// result gets a result from the store if there is one, otherwise it
// calculates it and saves it.
func result(ctx context.Context, flags *CmdFlag, a *msa.Alignment) (*store.Result, error) {
	if flags.DB == "" {
		return calculate(ctx, flags, a)
	}
	db, err := store.Open(flags.DB)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	key := store.Key(flags.Stat, flags.settings(), a)
	if r, err := db.Load(key); err != nil {
		log.Warningf("Ignoring stored result: %v", err)
	} else if r != nil {
		return r, nil
	}
	r, err := calculate(ctx, flags, a)
	if err != nil {
		return nil, err
	}
	if err := db.Save(key, r); err != nil {
		return nil, fmt.Errorf("saving to %s: %w", flags.DB, err)
	}
	return r, nil
}

// readAlignment reads from a file, or standard input if there is no name
// or it is "-".
func readAlignment(infile string) (*msa.Alignment, error) {
	if infile == "" || infile == "-" {
		return msa.Read(os.Stdin)
	}
	return msa.ReadFile(infile)
}

// Mymain reads the alignment, gets the statistic and writes it.
func Mymain(ctx context.Context, flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	a, err := readAlignment(infile)
	if err != nil {
		return fmt.Errorf("Fail reading alignment: %w", err)
	}
	log.Infof("Read %d sequences of length %d", a.Number(), a.Length())

	r, err := result(ctx, flags, a)
	if err != nil {
		return err
	}

	w, done, err := outFile(outfile)
	if err != nil {
		return err
	}
	switch flags.Stat {
	case Entropy:
		present := make([]float64, a.Length())
		if err = msatools.Occupancy(a, present, msatools.DimCols, false); err == nil {
			err = writeNtrpy(w, r.Data, present, flags.Offset)
		}
		if err == nil && flags.Chimera != "" {
			err = writeChimera(flags.Chimera, r.Data, present, flags.Offset)
		}
	case MutInfo, OMES, SCA:
		if r.Rows > 0 {
			m := mat.NewSymDense(r.Rows, r.Data)
			err = writeMatrix(w, m)
			if err == nil && flags.HeatMap != "" {
				err = writeHeatMap(flags.HeatMap, flags.Stat, m, flags.Offset)
			}
		}
	default:
		err = writeVector(w, r.Data)
	}
	if err != nil {
		done()
		return err
	}
	return done()
}
