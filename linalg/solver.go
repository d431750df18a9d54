package linalg

import "github.com/pkg/errors"

// ErrSolve is the root of every solver failure; the errors below wrap it.
var ErrSolve = errors.New("linear solve failed")

var (
	ErrDimension           = errors.Wrap(ErrSolve, "dimension mismatch")
	ErrNotPositiveDefinite = errors.Wrap(ErrSolve, "matrix is not positive definite")
	ErrSingular            = errors.Wrap(ErrSolve, "matrix is singular")
	ErrNotConverged        = errors.Wrap(ErrSolve, "iterative solve did not converge")
)

// A Solver factorizes square sparse matrices.
type Solver interface {
	Factorize(a *SparseMatrix) (Factorization, error)
}

// A Factorization solves Ax = b for the matrix it was factorized from. It can be reused for any number of right-hand sides.
type Factorization interface {
	Solve(b []float64) ([]float64, error)
}

// Method selects the factorization used by a DenseSolver.
type Method int

const (
	MethodAuto     Method = iota // Cholesky for symmetric matrices, LU otherwise
	MethodCholesky               // Symmetric positive-definite matrices only
	MethodLU
)

func (m Method) String() string {
	switch m {
	case MethodCholesky:
		return "cholesky"
	case MethodLU:
		return "lu"
	}
	return "auto"
}

// SymmetryTolerance is the absolute difference under which two mirrored entries count as equal when picking a factorization.
const SymmetryTolerance = 1e-12

// AutoSolver factorizes small matrices densely and hands larger ones to an iterative solver, whose memory use grows
// with the number of non-zero entries rather than with the square of the matrix size.
type AutoSolver struct {
	DenseLimit int // Matrices with at most this many rows use Dense
	Dense      *DenseSolver
	Iterative  *IterativeSolver
}

// NewAutoSolver returns an AutoSolver with default settings.
func NewAutoSolver() *AutoSolver {
	return &AutoSolver{
		DenseLimit: 2500,
		Dense:      NewDenseSolver(),
		Iterative:  NewIterativeSolver(),
	}
}

func (s *AutoSolver) Factorize(a *SparseMatrix) (Factorization, error) {
	if rows, _ := a.Dims(); rows <= s.DenseLimit {
		return s.Dense.Factorize(a)
	}
	return s.Iterative.Factorize(a)
}

// SolveAll factorizes a once and solves it against every right-hand side in bs.
func SolveAll(solver Solver, a *SparseMatrix, bs ...[]float64) ([][]float64, error) {

	factor, err := solver.Factorize(a)
	if err != nil {
		return nil, err
	}

	xs := make([][]float64, len(bs))
	for i, b := range bs {
		if xs[i], err = factor.Solve(b); err != nil {
			return nil, errors.Wrapf(err, "right-hand side %d", i)
		}
	}

	return xs, nil

}
