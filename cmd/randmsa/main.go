// 31 July 2020, 17 Oct 2026

package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	. "github.com/andrew-torda/msastat/pkg/common"
	"github.com/andrew-torda/msastat/pkg/randmsa"
)

const iseed int64 = 1637

var (
	app    = kingpin.New("randmsa", "write a random alignment, one sequence per line")
	noGap  = app.Flag("nogap", "do not put gaps in sequences").Short('g').Bool()
	ambig  = app.Flag("ambig", "add ambiguity codes B, J, Z, X and O, U").Short('a').Bool()
	mkErr  = app.Flag("err", "provoke errors, the last sequence is too short").Short('e').Bool()
	seed   = app.Flag("seed", "random number seed").Short('r').Default(fmt.Sprint(iseed)).Int64()
	couple = app.Flag("couple", "chance a column copies the one before").Default("0").Float64()
	fname  = app.Arg("file", "output file, - for standard output").Required().String()
	nseq   = app.Arg("nseq", "number of sequences").Required().Uint32()
	length = app.Arg("length", "length of sequences").Required().Uint32()
)

func main() {
	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		app.Usage(os.Args[1:])
		os.Exit(ExitUsageError)
	}
	args := randmsa.Args{
		Iseed:  *seed,
		Nseq:   int(*nseq),
		Len:    int(*length),
		NoGap:  *noGap,
		Ambig:  *ambig,
		Couple: *couple,
		MkErr:  *mkErr,
	}
	if *fname == "-" {
		args.Wrtr = os.Stdout
	} else {
		WarnExists(*fname)
		ft, err := os.Create(*fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, "File for output:", err)
			os.Exit(ExitFailure)
		}
		defer ft.Close()
		args.Wrtr = ft
	}
	if err := randmsa.Main(&args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
