// 17 Oct 2026
// Read up a multiple sequence alignment and calculate statistics over
// columns or pairs of columns.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"gopkg.in/alecthomas/kingpin.v2"

	. "github.com/andrew-torda/msastat/pkg/common"
	"github.com/andrew-torda/msastat/pkg/msastat"
)

// command-line options
var (
	app = kingpin.New("msastat", "statistics over multiple sequence alignments")

	// global
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	dbFile     = app.Flag("db", "keep results in this bolt database").String()
	nThreads   = app.Flag("nt", "number of threads to use").Int()
	debug      = app.Flag("debug", "log probability tables, forces one thread").Bool()
	timing     = app.Flag("time", "print out timing information").Short('t').Bool()
	ambiguity  = app.Flag("ambiguity", "spread B, J, Z and X over the residues they stand for").Default("true").Bool()
	turbo      = app.Flag("turbo", "decode the whole alignment before pair statistics").Default("true").Bool()
	turboLimit = app.Flag("turbolimit", "bytes allowed for the turbo cache").Default("1073741824").Int64()
	heatMap    = app.Flag("heatmap", "pair statistics: also draw the matrix to this png, svg or pdf file").String()

	entropyCmd = app.Command("entropy", "entropy of each column")
	omitGaps   = entropyCmd.Flag("omitgaps", "leave gaps out of the calculation").Short('g').Bool()
	chimera    = entropyCmd.Flag("chimera", "filename to write chimera format to").Short('c').String()
	offset     = entropyCmd.Flag("offset", "offset for numbering output, renumbering sites").Short('f').Int()
	entIn      = entropyCmd.Arg("infile", "alignment, standard input if missing").String()
	entOut     = entropyCmd.Arg("outfile", "output, standard output if missing").String()

	mutinfoCmd = app.Command("mutinfo", "mutual information of each pair of columns")
	norm       = mutinfoCmd.Flag("norm", "divide by the joint entropy").Bool()
	miIn       = mutinfoCmd.Arg("infile", "alignment, standard input if missing").String()
	miOut      = mutinfoCmd.Arg("outfile", "output, standard output if missing").String()

	omesCmd = app.Command("omes", "observed minus expected squared for each pair of columns")
	omesIn  = omesCmd.Arg("infile", "alignment, standard input if missing").String()
	omesOut = omesCmd.Arg("outfile", "output, standard output if missing").String()

	scaCmd = app.Command("sca", "statistical coupling of each pair of columns")
	scaIn  = scaCmd.Arg("infile", "alignment, standard input if missing").String()
	scaOut = scaCmd.Arg("outfile", "output, standard output if missing").String()

	occCmd = app.Command("occupancy", "fraction of letters in each column or sequence")
	dim    = occCmd.Flag("dim", "rows (sequences) or cols (columns)").Default("cols").Enum("rows", "cols")
	count  = occCmd.Flag("count", "print counts, not fractions").Bool()
	occIn  = occCmd.Arg("infile", "alignment, standard input if missing").String()
	occOut = occCmd.Arg("outfile", "output, standard output if missing").String()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := msastat.SetLogging(os.Stderr, *logLevel, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "Cannot set log level:", err)
		os.Exit(ExitUsageError)
	}

	flags := msastat.CmdFlag{
		Stat:       cmd,
		Ambiguity:  *ambiguity,
		OmitGaps:   *omitGaps,
		Norm:       *norm,
		Turbo:      *turbo,
		TurboLimit: *turboLimit,
		Debug:      *debug,
		Workers:    *nThreads,
		Dim:        *dim,
		Count:      *count,
		Chimera:    *chimera,
		HeatMap:    *heatMap,
		Offset:     *offset,
		DB:         *dbFile,
		Time:       *timing,
	}
	var infile, outfile string
	switch cmd {
	case entropyCmd.FullCommand():
		infile, outfile = *entIn, *entOut
	case mutinfoCmd.FullCommand():
		infile, outfile = *miIn, *miOut
	case omesCmd.FullCommand():
		infile, outfile = *omesIn, *omesOut
	case scaCmd.FullCommand():
		infile, outfile = *scaIn, *scaOut
	case occCmd.FullCommand():
		infile, outfile = *occIn, *occOut
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := msastat.Mymain(ctx, &flags, infile, outfile)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
