package msastat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// grid lets plotter.HeatMap look at a symmetric matrix. Columns are
// numbered from 1 + offset, as in the csv files.
type grid struct {
	m      mat.Symmetric
	offset int
}

func (g grid) Dims() (c, r int)   { n := g.m.SymmetricDim(); return n, n }
func (g grid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g grid) X(c int) float64    { return float64(c + 1 + g.offset) }
func (g grid) Y(r int) float64    { return float64(r + 1 + g.offset) }

// writeHeatMap draws the matrix into fname. The format comes from the
// file extension, png, svg, pdf and so on.
func writeHeatMap(fname, title string, m mat.Symmetric, offset int) error {
	n := m.SymmetricDim()
	lo, hi := m.At(0, 0), m.At(0, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			lo, hi = math.Min(lo, m.At(i, j)), math.Max(hi, m.At(i, j))
		}
	}
	if lo == hi {
		log.Warningf("Every %s value is %g, not drawing %s", title, lo, fname)
		return nil
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "column"
	h := plotter.NewHeatMap(grid{m: m, offset: offset}, palette.Heat(16, 1))
	p.Add(h)
	side := 6 * vg.Inch
	if err := p.Save(side, side, fname); err != nil {
		return fmt.Errorf("heat map %s: %w", fname, err)
	}
	log.Infof("Wrote heat map to %s", fname)
	return nil
}
