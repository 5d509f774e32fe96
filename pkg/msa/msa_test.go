package msa_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/msastat/pkg/alphabet"
	"github.com/andrew-torda/msastat/pkg/brokenio"
	"github.com/andrew-torda/msastat/pkg/common"
	. "github.com/andrew-torda/msastat/pkg/msa"
)

func TestNew(t *testing.T) {
	var tests = []struct {
		buf            string
		number, length int
		ok             bool
	}{
		{"ACAC", 2, 2, true},
		{"ACA", 2, 2, false},
		{"", 0, 0, true},
		{"", 3, 0, true},
		{"AC", -1, -2, false},
		{"ACGT", 1, 4, true},
	}
	for _, tt := range tests {
		_, err := New([]byte(tt.buf), tt.number, tt.length)
		if (err == nil) != tt.ok {
			t.Errorf("New(%q, %d, %d) err %v", tt.buf, tt.number, tt.length, err)
		}
		if err != nil && !errors.Is(err, ErrShape) {
			t.Errorf("error should wrap ErrShape, got %v", err)
		}
	}
}

func TestColumn(t *testing.T) {
	a, err := FromRows([]string{"AC-", "aZx", "B.g"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Number() != 3 || a.Length() != 3 {
		t.Fatal("wrong size", a.Number(), a.Length())
	}
	want := [][]uint8{
		{alphabet.A, alphabet.A, alphabet.B},
		{3, alphabet.Z, alphabet.Gap},
		{alphabet.Gap, alphabet.X, 7},
	}
	var dst []uint8
	for col := range want {
		dst = a.Column(col, dst)
		for k, w := range want[col] {
			if dst[k] != w {
				t.Errorf("col %d seq %d got %d want %d", col, k, dst[k], w)
			}
			if a.Slot(k, col) != w {
				t.Errorf("Slot(%d,%d) got %d want %d", k, col, a.Slot(k, col), w)
			}
		}
	}
	tr := a.Transpose()
	for col := range want {
		for k, w := range want[col] {
			if tr.Mat[col][k] != w {
				t.Errorf("transpose col %d seq %d got %d want %d", col, k, tr.Mat[col][k], w)
			}
		}
	}
	if string(a.Row(1)) != "aZx" || a.At(2, 1) != '.' {
		t.Error("Row or At broken")
	}
}

func TestFromRowsRagged(t *testing.T) {
	if _, err := FromRows([]string{"ACGT", "ACG"}); !errors.Is(err, ErrShape) {
		t.Fatal("ragged rows should fail with ErrShape, got", err)
	}
}

func TestReadFile(t *testing.T) {
	var tests = []struct {
		s              string
		number, length int
		ok             bool
	}{
		{"ACGT\nAC-T\n", 2, 4, true},
		{"ACGT\r\n\n  \nAC-T", 2, 4, true},
		{"ACGT\nACG\n", 0, 0, false},
		{"", 0, 0, false},
		{"\n\n", 0, 0, false},
	}
	for _, tt := range tests {
		fname, err := common.WrtTemp(tt.s)
		if err != nil {
			t.Fatal(err)
		}
		defer os.Remove(fname)
		a, err := ReadFile(fname)
		if (err == nil) != tt.ok {
			t.Errorf("%q: err %v", tt.s, err)
			continue
		}
		if err != nil {
			continue
		}
		if a.Number() != tt.number || a.Length() != tt.length {
			t.Errorf("%q: got %d x %d", tt.s, a.Number(), a.Length())
		}
	}
}

func TestRead(t *testing.T) {
	a, err := Read(strings.NewReader("AA\nCC\nGG\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Bytes()) != "AACCGG" {
		t.Fatal("got", string(a.Bytes()))
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := ReadFile("/no/such/file/here"); err == nil {
		t.Fatal("expected an error")
	}
}

// TestReadBroken checks a failing reader is reported, not parsed.
func TestReadBroken(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader("ACDE\nACDE\nACDE\n"), 1)
	rdr.SetProbFail(1)
	if _, err := Read(rdr); err == nil {
		t.Fatal("broken reader gave no error")
	}
}
