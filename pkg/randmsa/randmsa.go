// 31 July 2020, 17 Oct 2026

// Package randmsa writes random alignments in the raw format msastat
// reads, one sequence per line. They are for testing and for timing the
// pair statistics on big inputs.
package randmsa

import (
	"bufio"
	"io"
	"math/rand"
	"sync"
)

// Args is the set of arguments passed to the main function.
type Args struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Nseq   int       // number of sequences
	Len    int       // length of sequences
	NoGap  bool      // do not add gaps
	Ambig  bool      // sprinkle in B, J, Z, X, O and U
	Couple float64   // chance a column copies the one before it
	MkErr  bool      // make the last sequence one short
}

const (
	residues = "ACDEFGHIKLMNPQRSTVWY"
	ambig    = "BJZXOU"
)

// symbols returns what we draw from. Gaps come up about one time in
// eighty one, ambiguity codes a little less often.
func symbols(args *Args) []byte {
	s := []byte(residues + residues + residues + residues)
	if args.Ambig {
		s = append(s, ambig...)
	}
	if !args.NoGap {
		s = append(s, '-')
	}
	return s
}

// getseq returns a byte slice with a random sequence in it.
func getseq(args *Args, syms []byte, rnd *rand.Rand) []byte {
	ret := make([]byte, args.Len, args.Len+1)
	for i := range ret {
		if i > 0 && rnd.Float64() < args.Couple {
			ret[i] = ret[i-1]
		} else {
			ret[i] = syms[rnd.Intn(len(syms))]
		}
	}
	return append(ret, '\n')
}

// writeseq writes sequences as they arrive. After the first error it
// just drains the channel.
func writeseq(sChan <-chan []byte, w io.Writer, errp *error, wg *sync.WaitGroup) {
	defer wg.Done()
	bw := bufio.NewWriter(w)
	for s := range sChan {
		if *errp == nil {
			_, *errp = bw.Write(s)
		}
	}
	if *errp == nil {
		*errp = bw.Flush()
	}
}

// Main writes random sequences to args.Wrtr.
func Main(args *Args) error {
	var wg sync.WaitGroup
	var err error
	syms := symbols(args)
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args.Wrtr, &err, &wg)
	for i := 0; i < args.Nseq; i++ {
		s := getseq(args, syms, rnd)
		if args.MkErr && i == args.Nseq-1 && args.Len > 0 {
			s = append(s[:args.Len-1], '\n')
		}
		sChan <- s
	}
	close(sChan)
	wg.Wait()
	return err
}
