// linalg is the sparse linear algebra used by the mesh operators: matrices are assembled from additive (value, row, col)
// triplets, stored in compressed sparse row form, and handed to a Solver, which factorizes them once and solves against
// any number of right-hand sides.
package linalg

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Triplet collects the entries of a sparse matrix before it's built. Entries added to the same (row, col) accumulate.
type Triplet struct {
	dok   *sparse.DOK
	added int
}

// NewTriplet creates a new, empty Triplet for a rows x cols matrix.
func NewTriplet(rows, cols int) *Triplet {
	return &Triplet{dok: sparse.NewDOK(rows, cols)}
}

// AddEntry adds value to the matrix entry at (row, col). AddEntry panics if the position lies outside of the matrix.
func (t *Triplet) AddEntry(value float64, row, col int) {
	rows, cols := t.dok.Dims()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		panic(fmt.Sprintf("linalg: triplet entry (%d, %d) outside of %dx%d matrix", row, col, rows, cols))
	}
	t.dok.Set(row, col, t.dok.At(row, col)+value)
	t.added++
}

// Dims returns the number of rows and columns of the Triplet's matrix.
func (t *Triplet) Dims() (int, int) {
	return t.dok.Dims()
}

// Len returns the number of entries added so far, duplicates included.
func (t *Triplet) Len() int {
	return t.added
}

// SparseMatrix is an immutable matrix in compressed sparse row form. It implements gonum's mat.Matrix.
type SparseMatrix struct {
	csr *sparse.CSR
}

var _ mat.Matrix = (*SparseMatrix)(nil)

// NewSparseMatrix builds a SparseMatrix from the given Triplet.
func NewSparseMatrix(t *Triplet) *SparseMatrix {
	return &SparseMatrix{csr: t.dok.ToCSR()}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *SparseMatrix {
	return Diagonal(nil, n)
}

// Diagonal returns a square matrix with the given values on its diagonal. If diag is nil, every diagonal value is 1.
func Diagonal(diag []float64, n int) *SparseMatrix {
	t := NewTriplet(n, n)
	for i := 0; i < n; i++ {
		v := 1.0
		if diag != nil {
			v = diag[i]
		}
		t.AddEntry(v, i, i)
	}
	return NewSparseMatrix(t)
}

// Dims returns the number of rows and columns in the matrix.
func (m *SparseMatrix) Dims() (int, int) {
	return m.csr.Dims()
}

// At returns the value at (i, j); unset entries are 0.
func (m *SparseMatrix) At(i, j int) float64 {
	return m.csr.At(i, j)
}

// T returns the transpose of the matrix, as gonum's mat.Matrix interface expects.
func (m *SparseMatrix) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// NNZ returns the number of stored (structurally non-zero) entries.
func (m *SparseMatrix) NNZ() int {
	return m.csr.NNZ()
}

// DoNonZero calls fn for every stored entry.
func (m *SparseMatrix) DoNonZero(fn func(i, j int, v float64)) {
	m.csr.DoNonZero(fn)
}

// RowSum returns the sum of the entries of row i.
func (m *SparseMatrix) RowSum(i int) float64 {
	sum := 0.0
	m.csr.DoRowNonZero(i, func(_, _ int, v float64) {
		sum += v
	})
	return sum
}

// Diag returns the diagonal of the matrix.
func (m *SparseMatrix) Diag() []float64 {
	rows, cols := m.Dims()
	d := make([]float64, min(rows, cols))
	for i := range d {
		d[i] = m.At(i, i)
	}
	return d
}

// MulVec returns the product of the matrix with x.
func (m *SparseMatrix) MulVec(x []float64) []float64 {
	rows, _ := m.Dims()
	dst := make([]float64, rows)
	m.mulVecTo(dst, x)
	return dst
}

// mulVecTo overwrites dst with the product of the matrix with x.
func (m *SparseMatrix) mulVecTo(dst, x []float64) {
	if _, cols := m.Dims(); len(x) != cols {
		panic(mat.ErrShape)
	}
	for i := range dst {
		dst[i] = 0
	}
	m.csr.MulVecTo(dst, false, x)
}

// Scale returns a copy of the matrix with every entry multiplied by s.
func (m *SparseMatrix) Scale(s float64) *SparseMatrix {
	t := NewTriplet(m.Dims())
	m.DoNonZero(func(i, j int, v float64) { t.AddEntry(v*s, i, j) })
	return NewSparseMatrix(t)
}

// Add returns the sum of the matrix and other, which must have the same dimensions.
func (m *SparseMatrix) Add(other *SparseMatrix) *SparseMatrix {
	rows, cols := m.Dims()
	if r, c := other.Dims(); r != rows || c != cols {
		panic(mat.ErrShape)
	}
	t := NewTriplet(rows, cols)
	m.DoNonZero(func(i, j int, v float64) { t.AddEntry(v, i, j) })
	other.DoNonZero(func(i, j int, v float64) { t.AddEntry(v, i, j) })
	return NewSparseMatrix(t)
}

// IsSymmetric returns true if the matrix is square and every entry matches its transposed entry within tol.
func (m *SparseMatrix) IsSymmetric(tol float64) bool {
	if rows, cols := m.Dims(); rows != cols {
		return false
	}
	symmetric := true
	m.DoNonZero(func(i, j int, v float64) {
		if symmetric && i != j && math.Abs(v-m.At(j, i)) > tol {
			symmetric = false
		}
	})
	return symmetric
}
