package msastat

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/op/go-logging"

	"github.com/andrew-torda/msastat/pkg/brokenio"
	"github.com/andrew-torda/msastat/pkg/msatools"
	"github.com/andrew-torda/msastat/pkg/randmsa"
)

func init() {
	for _, m := range Modules {
		logging.SetLevel(logging.ERROR, m)
	}
}

const s1 = `ACDE
AC-E

ACDQ
`

// run writes s1 to a file, runs Mymain and returns the output lines.
func run(t *testing.T, flags *CmdFlag) []string {
	t.Helper()
	dir := t.TempDir()
	infile := filepath.Join(dir, "in.aln")
	outfile := filepath.Join(dir, "out")
	if err := os.WriteFile(infile, []byte(s1), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Mymain(context.Background(), flags, infile, outfile); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestEntropy(t *testing.T) {
	flags := &CmdFlag{Stat: Entropy, Ambiguity: true, Offset: 10}
	got := run(t, flags)
	want := []string{
		`"res num","entropy","%frac non-gap"`,
		"11,0.00,1.00",
		"12,0.00,1.00",
		"13,0.64,0.67",
		"14,0.64,1.00",
	}
	if !cmp.Equal(want, got) {
		t.Fatal(cmp.Diff(want, got))
	}
}

func TestChimera(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "att")
	run(t, &CmdFlag{Stat: Entropy, Chimera: fname})
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, att := range []string{"entropy", "present", "interesting"} {
		if !strings.Contains(s, "attribute: "+att+"\n") {
			t.Error("missing attribute", att)
		}
	}
	if n := strings.Count(s, "\t:"); n != 12 {
		t.Errorf("got %d residue lines, want 12", n)
	}
}

func TestMatrix(t *testing.T) {
	for _, stat := range []string{MutInfo, OMES, SCA} {
		got := run(t, &CmdFlag{Stat: stat, Ambiguity: true, Turbo: true})
		if len(got) != 4 {
			t.Fatalf("%s: got %d lines, want 4", stat, len(got))
		}
		for i, line := range got {
			f := strings.Fields(line)
			if len(f) != 4 {
				t.Fatalf("%s: line %d has %d fields", stat, i, len(f))
			}
			if f[i] != "0" {
				t.Errorf("%s: diagonal %d is %s", stat, i, f[i])
			}
		}
	}
}

func TestOccupancy(t *testing.T) {
	got := run(t, &CmdFlag{Stat: Occupancy, Dim: "rows", Count: true})
	want := []string{"4", "3", "4"}
	if !cmp.Equal(want, got) {
		t.Fatal(cmp.Diff(want, got))
	}
	got = run(t, &CmdFlag{Stat: Occupancy, Dim: "cols"})
	want = []string{"1", "1", "0.666667", "1"}
	if !cmp.Equal(want, got) {
		t.Fatal(cmp.Diff(want, got))
	}
}

func TestStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "msastat.db")
	flags := &CmdFlag{Stat: MutInfo, Ambiguity: true, Turbo: true, DB: db}
	first := run(t, flags)
	second := run(t, flags)
	if !cmp.Equal(first, second) {
		t.Fatal(cmp.Diff(first, second))
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatal("store not written", err)
	}
}

func TestBadFlags(t *testing.T) {
	dir := t.TempDir()
	infile := filepath.Join(dir, "in.aln")
	if err := os.WriteFile(infile, []byte(s1), 0644); err != nil {
		t.Fatal(err)
	}
	outfile := filepath.Join(dir, "out")
	for _, flags := range []*CmdFlag{
		{Stat: "nonsense"},
		{Stat: Occupancy, Dim: "diagonal"},
	} {
		if err := Mymain(context.Background(), flags, infile, outfile); err == nil {
			t.Errorf("%+v should fail", flags)
		}
	}
	if err := Mymain(context.Background(), &CmdFlag{Stat: Entropy}, filepath.Join(dir, "missing"), outfile); err == nil {
		t.Error("missing input should fail")
	}
}

func TestOptions(t *testing.T) {
	flags := &CmdFlag{Ambiguity: false, OmitGaps: true, Norm: true, Workers: 3}
	opts := flags.Options()
	want := &msatools.Options{OmitGaps: true, Norm: true, Workers: 3,
		TurboLimit: msatools.DefaultTurboLimit}
	if !cmp.Equal(want, opts) {
		t.Fatal(cmp.Diff(want, opts))
	}
}

func TestWriteBroken(t *testing.T) {
	ent := []float64{0.1, 0.2, 0.3}
	if err := writeNtrpy(brokenio.NewWriter(io.Discard, 40), ent, ent, 0); err == nil {
		t.Error("csv writer missed the failure")
	}
	if err := writeNtrpy(brokenio.NewWriter(io.Discard, 10), ent, ent, 0); err == nil {
		t.Error("csv writer missed the failure in the heading")
	}
	if err := wrtAtt(brokenio.NewWriter(io.Discard, 100), "entropy", ent, 0); err == nil {
		t.Error("attribute writer missed the failure")
	}
	if err := writeVector(brokenio.NewWriter(io.Discard, 3), ent); err == nil {
		t.Error("vector writer missed the failure")
	}
}

// TestStrategies runs each pair statistic on a random alignment with and
// without the column cache and with one and several threads.
func TestStrategies(t *testing.T) {
	dir := t.TempDir()
	infile := filepath.Join(dir, "rand.aln")
	fp, err := os.Create(infile)
	if err != nil {
		t.Fatal(err)
	}
	args := randmsa.Args{Iseed: 3, Wrtr: fp, Nseq: 60, Len: 25, Ambig: true, Couple: 0.4}
	err = randmsa.Main(&args)
	fp.Close()
	if err != nil {
		t.Fatal(err)
	}
	for _, stat := range []string{MutInfo, OMES, SCA} {
		var outs [][]float64
		for i, flags := range []*CmdFlag{
			{Stat: stat, Ambiguity: true, Turbo: true, Workers: 1},
			{Stat: stat, Ambiguity: true, Turbo: true, TurboLimit: 10, Workers: 4},
			{Stat: stat, Ambiguity: true, Turbo: false, Workers: 3},
		} {
			outfile := filepath.Join(dir, fmt.Sprint(stat, i))
			if err := Mymain(context.Background(), flags, infile, outfile); err != nil {
				t.Fatal(err)
			}
			outs = append(outs, readNums(t, outfile))
		}
		if len(outs[0]) != args.Len*args.Len {
			t.Fatalf("%s: got %d numbers", stat, len(outs[0]))
		}
		for _, x := range outs[1:] {
			if !cmp.Equal(outs[0], x, cmpopts.EquateApprox(1e-5, 1e-12)) {
				t.Errorf("%s: strategies disagree", stat)
			}
		}
	}
}

// readNums reads every number in a file.
func readNums(t *testing.T, fname string) []float64 {
	t.Helper()
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	var nums []float64
	for _, f := range strings.Fields(string(b)) {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			t.Fatal(err)
		}
		nums = append(nums, x)
	}
	return nums
}

func TestHeatMap(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "mi.png")
	run(t, &CmdFlag{Stat: MutInfo, Ambiguity: true, Turbo: true, HeatMap: fname})
	fi, err := os.Stat(fname)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("empty heat map")
	}
}

func TestSetLogging(t *testing.T) {
	defer func() {
		for _, m := range Modules {
			logging.SetLevel(logging.ERROR, m)
		}
	}()
	var buf strings.Builder
	if err := SetLogging(&buf, "warning", true); err != nil {
		t.Fatal(err)
	}
	if lvl := logging.GetLevel("msatools"); lvl != logging.DEBUG {
		t.Error("debug left msatools at", lvl)
	}
	if lvl := logging.GetLevel("store"); lvl != logging.WARNING {
		t.Error("store at", lvl)
	}
	if err := SetLogging(&buf, "warning", false); err != nil {
		t.Fatal(err)
	}
	if lvl := logging.GetLevel("msatools"); lvl != logging.WARNING {
		t.Error("no debug, msatools at", lvl)
	}
	if err := SetLogging(&buf, "chatty", false); err == nil {
		t.Error("bad level accepted")
	}
}
