package linalg

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DenseSolver factorizes a SparseMatrix by expanding it into a dense gonum matrix and using gonum's Cholesky or LU
// decompositions. Memory use is quadratic in the matrix size, so it suits meshes of up to a few thousand vertices.
type DenseSolver struct {
	Method Method
}

// NewDenseSolver returns a DenseSolver that picks Cholesky for symmetric matrices and LU otherwise.
func NewDenseSolver() *DenseSolver {
	return &DenseSolver{Method: MethodAuto}
}

func (s *DenseSolver) Factorize(a *SparseMatrix) (Factorization, error) {

	n, c := a.Dims()
	if n != c {
		return nil, errors.Wrapf(ErrDimension, "can't factorize a %dx%d matrix", n, c)
	}

	method := s.Method
	if method == MethodAuto {
		method = MethodLU
		if a.IsSymmetric(SymmetryTolerance) {
			method = MethodCholesky
		}
	}

	if method == MethodCholesky {

		sym := mat.NewSymDense(n, nil)
		a.DoNonZero(func(i, j int, v float64) {
			if j >= i {
				sym.SetSym(i, j, v)
			}
		})

		chol := &mat.Cholesky{}
		if ok := chol.Factorize(sym); !ok {
			return nil, errors.Wrapf(ErrNotPositiveDefinite, "cholesky factorization of %dx%d matrix", n, n)
		}

		return &choleskyFactorization{chol: chol, n: n}, nil

	}

	lu := &mat.LU{}
	lu.Factorize(mat.DenseCopyOf(a))

	if math.IsInf(lu.Cond(), 1) {
		return nil, errors.Wrapf(ErrSingular, "lu factorization of %dx%d matrix", n, n)
	}

	return &luFactorization{lu: lu, n: n}, nil

}

type choleskyFactorization struct {
	chol *mat.Cholesky
	n    int
}

func (f *choleskyFactorization) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.Wrapf(ErrDimension, "right-hand side has %d entries, want %d", len(b), f.n)
	}
	x := mat.NewVecDense(f.n, nil)
	err := f.chol.SolveVecTo(x, mat.NewVecDense(f.n, append([]float64{}, b...)))
	if err := checkCondition(err); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, x), nil
}

type luFactorization struct {
	lu *mat.LU
	n  int
}

func (f *luFactorization) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.Wrapf(ErrDimension, "right-hand side has %d entries, want %d", len(b), f.n)
	}
	x := mat.NewVecDense(f.n, nil)
	err := f.lu.SolveVecTo(x, false, mat.NewVecDense(f.n, append([]float64{}, b...)))
	if err := checkCondition(err); err != nil {
		return nil, err
	}
	return mat.Col(nil, 0, x), nil
}

// checkCondition lets gonum's ill-conditioning warnings through (the solution is still computed) and turns
// everything else into a solver error.
func checkCondition(err error) error {
	if err == nil {
		return nil
	}
	var cond mat.Condition
	if errors.As(err, &cond) {
		if math.IsInf(float64(cond), 1) {
			return errors.Wrap(ErrSingular, err.Error())
		}
		log.Printf("linalg: ill-conditioned system (condition number %g)", float64(cond))
		return nil
	}
	return errors.Wrap(ErrSolve, err.Error())
}
