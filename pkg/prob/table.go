package prob

// Table is a two dimensional array of float64's. All the rows point into
// one backing slice, so there is a single allocation and neighbouring
// rows sit next to each other in memory.
// It is used for one probability row per alignment column and for the
// per-sequence weights in SCA.
type Table struct {
	Mat      [][]float64
	fullData []float64
}

// fixSlices sets the row slices into the backing store.
func (tbl *Table) fixSlices(nR, nC int) {
	tmp := tbl.fullData
	tbl.Mat = make([][]float64, nR)
	for i := range tbl.Mat {
		tbl.Mat[i] = tmp[:nC:nC]
		tmp = tmp[nC:]
	}
}

// NewTable gives us a zeroed table of nR x nC.
func NewTable(nR, nC int) *Table {
	tbl := new(Table)
	tbl.fullData = make([]float64, nR*nC)
	tbl.fixSlices(nR, nC)
	return tbl
}

// Size returns the number of rows and number of columns
func (tbl *Table) Size() (nrow, ncol int) {
	if nrow = len(tbl.Mat); nrow == 0 {
		return 0, 0
	}
	ncol = len(tbl.Mat[0])
	return
}

// Vector returns row i as a Vector. The row must have NumChars columns.
func (tbl *Table) Vector(i int) *Vector {
	return (*Vector)(tbl.Mat[i])
}

// String prints a probability table, one alignment column per line. Only
// useful for debugging.
func (tbl *Table) String() (s string) {
	for i := range tbl.Mat {
		s += tbl.Vector(i).String() + "\n"
	}
	return s
}
