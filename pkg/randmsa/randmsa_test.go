// 31 July 2020

package randmsa_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andrew-torda/msastat/pkg/brokenio"
	"github.com/andrew-torda/msastat/pkg/msa"
	"github.com/andrew-torda/msastat/pkg/randmsa"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randmsa.Args{
		Wrtr:  &sb,
		Nseq:  500,
		Len:   160,
		Ambig: true,
	}
	if err := randmsa.Main(&args); err != nil {
		t.Fatal(err)
	}
	a, err := msa.Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	if a.Number() != args.Nseq || a.Length() != args.Len {
		t.Fatalf("got %d x %d, want %d x %d", a.Number(), a.Length(), args.Nseq, args.Len)
	}
	if !strings.ContainsAny(sb.String(), "-BJZXOU") {
		t.Error("no gaps or ambiguity codes in 80000 characters")
	}
}

func TestSeed(t *testing.T) {
	var b1, b2, b3 bytes.Buffer
	for _, x := range []struct {
		seed int64
		buf  *bytes.Buffer
	}{{1, &b1}, {1, &b2}, {2, &b3}} {
		args := randmsa.Args{Iseed: x.seed, Wrtr: x.buf, Nseq: 20, Len: 30, Couple: 0.3}
		if err := randmsa.Main(&args); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
		t.Error("same seed, different alignments")
	}
	if bytes.Equal(b1.Bytes(), b3.Bytes()) {
		t.Error("different seeds, same alignment")
	}
}

func TestNoGap(t *testing.T) {
	var sb strings.Builder
	args := randmsa.Args{Wrtr: &sb, Nseq: 100, Len: 100, NoGap: true}
	if err := randmsa.Main(&args); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(sb.String(), "-BJZXOU") {
		t.Error("asked for plain residues, got", sb.String())
	}
}

func TestMkErr(t *testing.T) {
	var sb strings.Builder
	args := randmsa.Args{Wrtr: &sb, Nseq: 5, Len: 10, MkErr: true}
	if err := randmsa.Main(&args); err != nil {
		t.Fatal(err)
	}
	if _, err := msa.Read(strings.NewReader(sb.String())); err == nil {
		t.Fatal("ragged alignment was read")
	}
}

func TestBrokenWriter(t *testing.T) {
	args := randmsa.Args{Wrtr: brokenio.NewWriter(&bytes.Buffer{}, 100), Nseq: 1000, Len: 100}
	if err := randmsa.Main(&args); err == nil {
		t.Fatal("write failure not reported")
	}
}
