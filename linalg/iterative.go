package linalg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// IterativeSolver solves sparse systems without a factorization: conjugate gradients for symmetric matrices and
// BiCGSTAB for the rest, both with a Jacobi (diagonal) preconditioner. Factorize only checks the matrix and
// records its diagonal; all the work happens in Solve.
type IterativeSolver struct {
	Tolerance     float64 // Relative residual |b - Ax| / |b| at which a solve stops
	MaxIterations int     // 0 means 10 times the matrix size
}

// NewIterativeSolver returns an IterativeSolver with default settings.
func NewIterativeSolver() *IterativeSolver {
	return &IterativeSolver{Tolerance: 1e-10}
}

func (s *IterativeSolver) Factorize(a *SparseMatrix) (Factorization, error) {

	n, c := a.Dims()
	if n != c {
		return nil, errors.Wrapf(ErrDimension, "can't solve a %dx%d matrix", n, c)
	}

	invDiag := a.Diag()
	for i, d := range invDiag {
		if d == 0 {
			invDiag[i] = 1
		} else {
			invDiag[i] = 1 / d
		}
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 10 * n
	}

	return &iterativeFactorization{
		a:         a,
		n:         n,
		invDiag:   invDiag,
		symmetric: a.IsSymmetric(SymmetryTolerance),
		tol:       s.Tolerance,
		maxIter:   maxIter,
	}, nil

}

type iterativeFactorization struct {
	a         *SparseMatrix
	n         int
	invDiag   []float64
	symmetric bool
	tol       float64
	maxIter   int
}

func (f *iterativeFactorization) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.Wrapf(ErrDimension, "right-hand side has %d entries, want %d", len(b), f.n)
	}
	if floats.Norm(b, 2) == 0 {
		return make([]float64, f.n), nil
	}
	if f.symmetric {
		return f.conjugateGradient(b)
	}
	return f.biCGStab(b)
}

func (f *iterativeFactorization) precondition(dst, r []float64) {
	floats.MulTo(dst, r, f.invDiag)
}

func (f *iterativeFactorization) conjugateGradient(b []float64) ([]float64, error) {

	n := f.n
	x := make([]float64, n)
	r := append([]float64{}, b...)
	z := make([]float64, n)
	ap := make([]float64, n)

	f.precondition(z, r)
	p := append([]float64{}, z...)
	rz := floats.Dot(r, z)
	limit := f.tol * floats.Norm(b, 2)

	for iter := 0; iter < f.maxIter; iter++ {

		f.a.mulVecTo(ap, p)
		pap := floats.Dot(p, ap)
		if pap <= 0 {
			return nil, errors.Wrapf(ErrNotPositiveDefinite, "conjugate gradient curvature %g at iteration %d", pap, iter)
		}

		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		if floats.Norm(r, 2) <= limit {
			return x, nil
		}

		f.precondition(z, r)
		rzNew := floats.Dot(r, z)
		floats.AddScaledTo(p, z, rzNew/rz, p)
		rz = rzNew

	}

	return nil, errors.Wrapf(ErrNotConverged, "conjugate gradient, %d iterations, residual %g", f.maxIter, floats.Norm(r, 2)/floats.Norm(b, 2))

}

func (f *iterativeFactorization) biCGStab(b []float64) ([]float64, error) {

	n := f.n
	x := make([]float64, n)
	r := append([]float64{}, b...)
	rHat := append([]float64{}, b...)
	p := make([]float64, n)
	v := make([]float64, n)
	y := make([]float64, n)
	s := make([]float64, n)
	z := make([]float64, n)
	t := make([]float64, n)

	rho, alpha, omega := 1.0, 1.0, 1.0
	limit := f.tol * floats.Norm(b, 2)

	for iter := 0; iter < f.maxIter; iter++ {

		rhoNew := floats.Dot(rHat, r)
		if rhoNew == 0 || omega == 0 {
			return nil, errors.Wrapf(ErrNotConverged, "BiCGSTAB breakdown at iteration %d", iter)
		}

		beta := (rhoNew / rho) * (alpha / omega)
		floats.AddScaled(p, -omega, v)
		floats.AddScaledTo(p, r, beta, p)

		f.precondition(y, p)
		f.a.mulVecTo(v, y)

		alpha = rhoNew / floats.Dot(rHat, v)
		floats.AddScaledTo(s, r, -alpha, v)

		if floats.Norm(s, 2) <= limit {
			floats.AddScaled(x, alpha, y)
			return x, nil
		}

		f.precondition(z, s)
		f.a.mulVecTo(t, z)

		tt := floats.Dot(t, t)
		if tt == 0 {
			return nil, errors.Wrapf(ErrNotConverged, "BiCGSTAB breakdown at iteration %d", iter)
		}
		omega = floats.Dot(t, s) / tt

		floats.AddScaled(x, alpha, y)
		floats.AddScaled(x, omega, z)
		floats.AddScaledTo(r, s, -omega, t)

		if floats.Norm(r, 2) <= limit {
			return x, nil
		}

		rho = rhoNew

	}

	return nil, errors.Wrapf(ErrNotConverged, "BiCGSTAB, %d iterations, residual %g", f.maxIter, floats.Norm(r, 2)/floats.Norm(b, 2))

}
