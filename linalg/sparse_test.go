package linalg

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func BenchmarkNewSparseMatrix(b *testing.B) {

	b.StopTimer()
	t := poisson(4096)
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		NewSparseMatrix(t)
	}

}

// poisson returns the triplet of the n x n second difference matrix: 2 on the diagonal, -1 beside it.
func poisson(n int) *Triplet {
	t := NewTriplet(n, n)
	for i := 0; i < n; i++ {
		t.AddEntry(2, i, i)
		if i > 0 {
			t.AddEntry(-1, i, i-1)
		}
		if i < n-1 {
			t.AddEntry(-1, i, i+1)
		}
	}
	return t
}

func TestSparseMatrixDuplicates(t *testing.T) {

	tri := NewTriplet(3, 4)
	tri.AddEntry(1, 0, 0)
	tri.AddEntry(2, 2, 3)
	tri.AddEntry(0.5, 0, 0)
	tri.AddEntry(-1, 1, 2)
	tri.AddEntry(0.25, 0, 0)

	if tri.Len() != 5 {
		t.Fatal("triplet should keep every added entry, has", tri.Len())
	}

	m := NewSparseMatrix(tri)

	if r, c := m.Dims(); r != 3 || c != 4 {
		t.Fatalf("expected a 3x4 matrix, got %dx%d", r, c)
	}

	if m.NNZ() != 3 {
		t.Fatal("duplicate entries should be merged; stored entries:", m.NNZ())
	}

	expected := mat.NewDense(3, 4, []float64{
		1.75, 0, 0, 0,
		0, 0, -1, 0,
		0, 0, 0, 2,
	})

	if !mat.Equal(m, expected) {
		t.Fatalf("unexpected matrix:\n%v", mat.Formatted(m))
	}

	if !mat.Equal(m.T(), expected.T()) {
		t.Fatal("transpose doesn't match")
	}

}

func TestSparseMatrixAddEntryPanics(t *testing.T) {

	defer func() {
		if recover() == nil {
			t.Fatal("adding an entry outside of the matrix should panic")
		}
	}()

	NewTriplet(2, 2).AddEntry(1, 2, 0)

}

func TestSparseMatrixOperations(t *testing.T) {

	m := NewSparseMatrix(poisson(5))

	if !m.IsSymmetric(0) {
		t.Fatal("second difference matrix should be symmetric")
	}

	for i, d := range m.Diag() {
		if d != 2 {
			t.Fatalf("diagonal %d should be 2, got %f", i, d)
		}
	}

	if m.RowSum(0) != 1 || m.RowSum(2) != 0 || m.RowSum(4) != 1 {
		t.Fatal("unexpected row sums", m.RowSum(0), m.RowSum(2), m.RowSum(4))
	}

	x := []float64{1, 2, 3, 4, 5}
	y := m.MulVec(x)
	want := mat.NewVecDense(5, nil)
	want.MulVec(m, mat.NewVecDense(5, x))

	for i := range y {
		if y[i] != want.AtVec(i) {
			t.Fatalf("MulVec entry %d is %f, gonum computes %f", i, y[i], want.AtVec(i))
		}
	}

	sum := m.Add(Identity(5).Scale(3))
	for i := 0; i < 5; i++ {
		if sum.At(i, i) != 5 {
			t.Fatalf("diagonal %d of the sum should be 5, got %f", i, sum.At(i, i))
		}
	}
	if sum.NNZ() != m.NNZ() {
		t.Fatal("adding a diagonal shouldn't add stored entries")
	}

	if m.At(0, 0) != 2 {
		t.Fatal("Scale should return a copy and leave the original alone")
	}

	count := 0
	m.DoNonZero(func(i, j int, v float64) {
		if v != m.At(i, j) {
			t.Fatalf("DoNonZero reported %f at (%d, %d), At returns %f", v, i, j, m.At(i, j))
		}
		count++
	})
	if count != m.NNZ() {
		t.Fatalf("DoNonZero visited %d entries, matrix stores %d", count, m.NNZ())
	}

}

func TestSparseMatrixProductsOverwrite(t *testing.T) {

	m := nonSymmetric(6)
	x := []float64{1, -1, 2, 0.5, 3, -2}

	want := mat.NewVecDense(6, nil)
	want.MulVec(mat.DenseCopyOf(m), mat.NewVecDense(6, x))

	// The same buffer is reused, as the iterative solvers do.
	dst := make([]float64, 6)
	for pass := 0; pass < 3; pass++ {
		m.mulVecTo(dst, x)
		for i := range dst {
			if dst[i] != want.AtVec(i) {
				t.Fatalf("pass %d: entry %d is %f, expected %f", pass, i, dst[i], want.AtVec(i))
			}
		}
	}

	scaled := m.Scale(-0.5).Add(m)
	expected := mat.DenseCopyOf(m)
	expected.Scale(0.5, expected)

	if !mat.EqualApprox(scaled, expected, 1e-15) {
		t.Fatalf("unexpected m - m/2:\n%v", mat.Formatted(scaled))
	}

}

func TestSparseMatrixSymmetry(t *testing.T) {

	tri := NewTriplet(2, 2)
	tri.AddEntry(1, 0, 0)
	tri.AddEntry(1, 1, 1)
	tri.AddEntry(0.5, 0, 1)
	tri.AddEntry(0.5+1e-9, 1, 0)
	m := NewSparseMatrix(tri)

	if m.IsSymmetric(1e-12) {
		t.Fatal("entries differing by 1e-9 shouldn't count as symmetric with a 1e-12 tolerance")
	}

	if !m.IsSymmetric(1e-6) {
		t.Fatal("entries differing by 1e-9 should count as symmetric with a 1e-6 tolerance")
	}

	// A missing mirrored entry is an implicit zero.
	lower := NewTriplet(2, 2)
	lower.AddEntry(1, 1, 0)
	if NewSparseMatrix(lower).IsSymmetric(0) {
		t.Fatal("a strictly lower triangular matrix isn't symmetric")
	}

	if NewSparseMatrix(NewTriplet(2, 3)).IsSymmetric(0) {
		t.Fatal("a non-square matrix can't be symmetric")
	}

	diag := Diagonal([]float64{3, 4}, 2)
	if diag.At(0, 0) != 3 || diag.At(1, 1) != 4 || diag.At(0, 1) != 0 {
		t.Fatalf("unexpected diagonal matrix:\n%v", mat.Formatted(diag))
	}

}
