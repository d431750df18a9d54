package linalg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func BenchmarkIterativeSolve(b *testing.B) {

	b.StopTimer()
	a := NewSparseMatrix(poisson(2048))
	rhs := make([]float64, 2048)
	for i := range rhs {
		rhs[i] = math.Sin(float64(i))
	}
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		if _, err := SolveAll(NewIterativeSolver(), a, rhs); err != nil {
			b.Fatal(err)
		}
	}

}

// nonSymmetric returns a diagonally dominant n x n matrix with different upper and lower bands.
func nonSymmetric(n int) *SparseMatrix {
	t := NewTriplet(n, n)
	for i := 0; i < n; i++ {
		t.AddEntry(4, i, i)
		if i > 0 {
			t.AddEntry(-1, i, i-1)
		}
		if i < n-1 {
			t.AddEntry(-2, i, i+1)
		}
	}
	return NewSparseMatrix(t)
}

func residual(a *SparseMatrix, x, b []float64) float64 {
	ax := a.MulVec(x)
	sum := 0.0
	for i := range ax {
		sum += (ax[i] - b[i]) * (ax[i] - b[i])
	}
	return math.Sqrt(sum)
}

func TestSolversAgree(t *testing.T) {

	systems := map[string]*SparseMatrix{
		"symmetric":     NewSparseMatrix(poisson(40)),
		"non-symmetric": nonSymmetric(40),
	}

	solvers := map[string]Solver{
		"auto":      NewDenseSolver(),
		"cholesky":  &DenseSolver{Method: MethodCholesky},
		"lu":        &DenseSolver{Method: MethodLU},
		"iterative": &IterativeSolver{Tolerance: 1e-13},
	}

	b1 := make([]float64, 40)
	b2 := make([]float64, 40)
	for i := range b1 {
		b1[i] = float64(i%7) - 3
		b2[i] = math.Cos(float64(i))
	}

	for systemName, a := range systems {

		reference, err := SolveAll(&DenseSolver{Method: MethodLU}, a, b1, b2)
		if err != nil {
			t.Fatal(err)
		}

		for solverName, solver := range solvers {

			if solverName == "cholesky" && systemName == "non-symmetric" {
				continue
			}

			xs, err := SolveAll(solver, a, b1, b2)
			if err != nil {
				t.Fatalf("%s solver, %s system: %v", solverName, systemName, err)
			}

			for k, b := range [][]float64{b1, b2} {
				if r := residual(a, xs[k], b); r > 1e-8 {
					t.Fatalf("%s solver, %s system: residual %g for right-hand side %d", solverName, systemName, r, k)
				}
				for i := range xs[k] {
					if math.Abs(xs[k][i]-reference[k][i]) > 1e-7*(1+math.Abs(reference[k][i])) {
						t.Fatalf("%s solver, %s system: entry %d is %f, LU gives %f", solverName, systemName, i, xs[k][i], reference[k][i])
					}
				}
			}

		}

	}

}

func TestSolveZeroRightHandSide(t *testing.T) {

	for _, solver := range []Solver{NewDenseSolver(), NewIterativeSolver()} {
		xs, err := SolveAll(solver, nonSymmetric(10), make([]float64, 10))
		if err != nil {
			t.Fatal(err)
		}
		for i, x := range xs[0] {
			if x != 0 {
				t.Fatalf("%T: entry %d of the solution for b = 0 is %f", solver, i, x)
			}
		}
	}

}

func TestSolverErrors(t *testing.T) {

	indefinite := NewTriplet(2, 2)
	indefinite.AddEntry(1, 0, 0)
	indefinite.AddEntry(2, 0, 1)
	indefinite.AddEntry(2, 1, 0)
	indefinite.AddEntry(1, 1, 1)

	_, err := (&DenseSolver{Method: MethodCholesky}).Factorize(NewSparseMatrix(indefinite))
	if !errors.Is(err, ErrNotPositiveDefinite) {
		t.Fatal("expected ErrNotPositiveDefinite from Cholesky, got", err)
	}

	_, err = SolveAll(NewIterativeSolver(), NewSparseMatrix(indefinite), []float64{1, 0})
	if !errors.Is(err, ErrNotPositiveDefinite) {
		t.Fatal("expected ErrNotPositiveDefinite from conjugate gradients, got", err)
	}

	singular := NewTriplet(2, 2)
	singular.AddEntry(1, 0, 0)
	singular.AddEntry(2, 0, 1)
	singular.AddEntry(2, 1, 0)
	singular.AddEntry(4, 1, 1)

	_, err = SolveAll(&DenseSolver{Method: MethodLU}, NewSparseMatrix(singular), []float64{1, 1})
	if !errors.Is(err, ErrSolve) {
		t.Fatal("expected a solver error for a singular matrix, got", err)
	}

	for _, solver := range []Solver{NewDenseSolver(), NewIterativeSolver(), NewAutoSolver()} {

		if _, err := solver.Factorize(NewSparseMatrix(NewTriplet(2, 3))); !errors.Is(err, ErrDimension) {
			t.Fatalf("%T: expected ErrDimension for a non-square matrix, got %v", solver, err)
		}

		if _, err := SolveAll(solver, NewSparseMatrix(poisson(3)), []float64{1, 2}); !errors.Is(err, ErrDimension) {
			t.Fatalf("%T: expected ErrDimension for a short right-hand side, got %v", solver, err)
		}

	}

	rhs := make([]float64, 50)
	rhs[0] = 1
	_, err = SolveAll(&IterativeSolver{Tolerance: 1e-14, MaxIterations: 1}, NewSparseMatrix(poisson(50)), rhs)
	if !errors.Is(err, ErrNotConverged) {
		t.Fatal("expected ErrNotConverged after a single iteration, got", err)
	}

	if !errors.Is(ErrNotConverged, ErrSolve) || !errors.Is(ErrSingular, ErrSolve) {
		t.Fatal("every solver error should wrap ErrSolve")
	}

}

func TestAutoSolver(t *testing.T) {

	a := NewSparseMatrix(poisson(20))

	auto := NewAutoSolver()

	factor, err := auto.Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := factor.(*choleskyFactorization); !ok {
		t.Fatalf("small symmetric systems should use Cholesky, got %T", factor)
	}

	auto.DenseLimit = 10

	factor, err = auto.Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := factor.(*iterativeFactorization); !ok {
		t.Fatalf("systems above the dense limit should be solved iteratively, got %T", factor)
	}

	factor, err = NewDenseSolver().Factorize(nonSymmetric(5))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := factor.(*luFactorization); !ok {
		t.Fatalf("non-symmetric systems should use LU, got %T", factor)
	}

}
