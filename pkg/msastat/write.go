// 27 april 2020, 17 Oct 2026
package msastat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/andrew-torda/msastat/pkg/common"
)

// outFile opens fname for writing, or gives back standard output if there
// is no filename or it is "-". The returned function flushes and closes.
func outFile(fname string) (*bufio.Writer, func() error, error) {
	if fname == "" || fname == "-" {
		w := bufio.NewWriter(os.Stdout)
		return w, w.Flush, nil
	}
	common.WarnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	w := bufio.NewWriter(fp)
	done := func() error {
		if err := w.Flush(); err != nil {
			fp.Close()
			return err
		}
		return fp.Close()
	}
	return w, done, nil
}

// writeNtrpy writes the entropy csv file. present is the fraction of each
// column that is not a gap.
func writeNtrpy(w io.Writer, entropy, present []float64, offset int) error {
	if _, err := io.WriteString(w, "\"res num\",\"entropy\",\"%frac non-gap\"\n"); err != nil {
		return err
	}
	for i, v := range entropy {
		if _, err := fmt.Fprintf(w, "%d,%.2f,%.2f\n", i+1+offset, v, present[i]); err != nil {
			return err
		}
	}
	return nil
}

// wrtAtt writes an array of numbers in the format chimera wants for
// attributes.
func wrtAtt(w io.Writer, attname string, tmpNums []float64, offset int) error {
	head := "\nattribute: " + attname + "\nmatch mode: 1-to-1\nrecipient: residues"
	fmt.Fprintln(w, "#", time.Now().Format(time.RFC1123), head)
	for i, v := range tmpNums {
		rnum := i + 1 + offset
		if _, err := fmt.Fprintf(w, "\t:%d\t%#g\n", rnum, v); err != nil {
			return err
		}
	}
	return nil
}

// interesting is a hack, but useful. If a residue is present at least 60 %
// of the time, keep its entropy. Otherwise set it to 0.5.
func interesting(entropy, present []float64) []float64 {
	tmpnum := make([]float64, len(entropy))
	for i, e := range entropy {
		if present[i] >= 0.6 {
			tmpnum[i] = e
		} else {
			tmpnum[i] = 0.5
		}
	}
	return tmpnum
}

// writeChimera writes entropy, the fraction present and the interesting
// values as a chimera attribute file.
func writeChimera(fname string, entropy, present []float64, offset int) error {
	w, done, err := outFile(fname)
	if err != nil {
		return fmt.Errorf("chimera %w", err)
	}
	if err = wrtAtt(w, "entropy", entropy, offset); err != nil {
		done()
		return err
	}
	if err = wrtAtt(w, "present", present, offset); err != nil {
		done()
		return err
	}
	if err = wrtAtt(w, "interesting", interesting(entropy, present), offset); err != nil {
		done()
		return err
	}
	return done()
}

// writeMatrix writes a symmetric matrix, one row per line. The diagonal
// holds whatever the calculation left there, which is zero.
func writeMatrix(w io.Writer, m mat.Symmetric) error {
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sep := " "
			if j == n-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%.6g%s", m.At(i, j), sep); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeVector writes one value per line.
func writeVector(w io.Writer, v []float64) error {
	for _, x := range v {
		if _, err := fmt.Fprintf(w, "%.6g\n", x); err != nil {
			return err
		}
	}
	return nil
}
