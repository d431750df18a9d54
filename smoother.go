package ddg

import (
	"github.com/pkg/errors"
	"github.com/solarlune/ddg/linalg"
)

// SmoothOptions configures a Smoother.
type SmoothOptions struct {
	Weight       WeightScheme  // Laplacian weights
	TimeStep     float64       // Time step t of the implicit diffusion
	Lambda       float64       // Diffusion constant λ
	Iterations   int           // Number of implicit steps; the system is rebuilt from the current positions before each one
	IdentityMass bool          // Use the identity instead of the mixed Voronoi areas as mass matrix
	Solver       linalg.Solver // Solver for (M - tλW); nil means linalg.NewAutoSolver()
}

// DefaultSmoothOptions returns SmoothOptions with cotangent weights and a single small step.
func DefaultSmoothOptions() *SmoothOptions {
	return &SmoothOptions{
		Weight:     WeightCotangent,
		TimeStep:   0.001,
		Lambda:     1,
		Iterations: 1,
	}
}

// Smoother performs implicit Laplacian smoothing: each step solves (M - tλW) f' = M f for all three coordinate axes,
// where M is the mass matrix and W the Laplacian.
type Smoother struct {
	Options *SmoothOptions
}

// NewSmoother returns a new Smoother. Passing nil uses DefaultSmoothOptions().
func NewSmoother(options *SmoothOptions) *Smoother {
	if options == nil {
		options = DefaultSmoothOptions()
	}
	return &Smoother{Options: options}
}

// System returns the left-hand matrix (M - tλW) and the mass matrix M of one smoothing step on the mesh's current positions.
func (s *Smoother) System(mesh *Mesh) (*linalg.SparseMatrix, *linalg.SparseMatrix) {

	n := len(mesh.Vertices)

	var mass *linalg.SparseMatrix
	if s.Options.IdentityMass {
		mass = linalg.Identity(n)
	} else {
		mass = mesh.MassMatrix()
	}

	laplace := mesh.LaplaceMatrix(s.Options.Weight)

	return mass.Add(laplace.Scale(-s.Options.TimeStep * s.Options.Lambda)), mass

}

// Smooth smooths the mesh's vertex positions in place. The matrix is factorized once per step and solved for X, Y and Z;
// positions are only written once every step has been solved, so on error the mesh is left unchanged.
func (s *Smoother) Smooth(mesh *Mesh) error {

	if len(mesh.Faces) == 0 {
		return ErrEmptyMesh
	}

	if s.Options.TimeStep < 0 || s.Options.Lambda < 0 {
		return errors.Wrapf(ErrInvalidInput, "negative time step (%g) or diffusion constant (%g)", s.Options.TimeStep, s.Options.Lambda)
	}

	solver := s.Options.Solver
	if solver == nil {
		solver = linalg.NewAutoSolver()
	}

	iterations := s.Options.Iterations
	if iterations < 1 {
		iterations = 1
	}

	// Steps after the first need the updated positions, so they run on a scratch copy.
	work := mesh
	if iterations > 1 {
		work = mesh.Clone()
	}

	positions := mesh.Positions()

	for step := 0; step < iterations; step++ {

		a, mass := s.System(work)

		rhs := make([][]float64, 3)
		for axis := range rhs {
			f := make([]float64, len(positions))
			for i, p := range positions {
				f[i] = p.Get(axis)
			}
			rhs[axis] = mass.MulVec(f)
		}

		solved, err := linalg.SolveAll(solver, a, rhs...)
		if err != nil {
			return errors.Wrapf(err, "smoothing step %d", step)
		}

		for i := range positions {
			positions[i] = NewVector(solved[0][i], solved[1][i], solved[2][i])
		}

		if step < iterations-1 {
			if err := work.SetPositions(positions); err != nil {
				return err
			}
		}

	}

	return mesh.SetPositions(positions)

}
