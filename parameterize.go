package ddg

import (
	"log"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/solarlune/ddg/linalg"
)

// BoundaryShape selects the convex shape a Parameterizer pins the boundary loop to.
type BoundaryShape int

const (
	BoundaryDisk   BoundaryShape = iota // Unit circle around the origin, vertices spaced at equal angles
	BoundarySquare                      // The square [0, 1]², vertices spaced by arc length from the sharpest boundary corner
)

func (b BoundaryShape) String() string {
	if b == BoundarySquare {
		return "square"
	}
	return "disk"
}

// ParseBoundaryShape parses "disk" / "circle" or "square" / "rect" (case-insensitive).
func ParseBoundaryShape(name string) (BoundaryShape, error) {
	switch strings.ToLower(name) {
	case "disk", "circle":
		return BoundaryDisk, nil
	case "square", "rect", "rectangle":
		return BoundarySquare, nil
	}
	return BoundaryDisk, errors.Wrapf(ErrInvalidInput, "unknown boundary shape %q", name)
}

// ParamOptions configures a Parameterizer.
type ParamOptions struct {
	Boundary BoundaryShape
	Weight   WeightScheme
	Solver   linalg.Solver // nil means linalg.NewAutoSolver()
}

// DefaultParamOptions returns ParamOptions mapping onto a disk with cotangent weights.
func DefaultParamOptions() *ParamOptions {
	return &ParamOptions{
		Boundary: BoundaryDisk,
		Weight:   WeightCotangent,
	}
}

// Parameterizer computes Tutte-style UV coordinates: the boundary loop is pinned to a convex shape and the interior
// vertices are placed by solving the Laplace equation with those Dirichlet boundary values.
type Parameterizer struct {
	Options *ParamOptions
}

// NewParameterizer returns a new Parameterizer. Passing nil uses DefaultParamOptions().
func NewParameterizer(options *ParamOptions) *Parameterizer {
	if options == nil {
		options = DefaultParamOptions()
	}
	return &Parameterizer{Options: options}
}

// LongestBoundary returns the index of the boundary loop with the greatest arc length, or None if the mesh is closed.
func (mesh *Mesh) LongestBoundary() int {
	longest := None
	longestLength := -1.0
	for b := range mesh.Boundaries {
		if l := mesh.LoopLength(b); l > longestLength {
			longest = b
			longestLength = l
		}
	}
	return longest
}

// BoundaryUVs returns the UV position of every vertex on boundary loop b, laid out on the given shape.
// Vertices are placed counter-clockwise in UV space, so front-facing triangles keep their winding in the parameterization.
func (mesh *Mesh) BoundaryUVs(b int, shape BoundaryShape) map[int]Vector2 {

	loop := mesh.LoopVertices(b)
	n := len(loop)

	// Boundary loops run against the triangles' winding; walking them backwards gives a counter-clockwise layout.
	ordered := make([]int, n)
	for k := range ordered {
		ordered[k] = loop[(n-k)%n]
	}

	uvs := make(map[int]Vector2, n)

	switch shape {

	case BoundarySquare:

		// Start at the sharpest boundary corner, so that meshes with corners keep one on a corner of the square.
		start := 0
		for k, v := range ordered {
			if mesh.AngleDefect(v) > mesh.AngleDefect(ordered[start])+1e-9 {
				start = k
			}
		}
		ordered = append(append([]int{}, ordered[start:]...), ordered[:start]...)

		arc := make([]float64, n+1)
		for k := 0; k < n; k++ {
			from := mesh.Vertices[ordered[k]].Position
			to := mesh.Vertices[ordered[(k+1)%n]].Position
			arc[k+1] = arc[k] + from.Distance(to)
		}

		for k, v := range ordered {
			s := 4 * float64(k) / float64(n)
			if arc[n] > 0 {
				s = 4 * arc[k] / arc[n]
			}
			uvs[v] = squarePerimeterPoint(s)
		}

	default:

		for k, v := range ordered {
			theta := 2 * math.Pi * float64(k) / float64(n)
			uvs[v] = NewVector2(math.Cos(theta), math.Sin(theta))
		}

	}

	return uvs

}

// squarePerimeterPoint walks s units (0 <= s < 4) counter-clockwise around the unit square, starting from the origin.
func squarePerimeterPoint(s float64) Vector2 {
	side := math.Floor(s)
	t := s - side
	switch int(side) {
	case 0:
		return NewVector2(t, 0)
	case 1:
		return NewVector2(1, t)
	case 2:
		return NewVector2(1-t, 1)
	}
	return NewVector2(0, 1-t)
}

// Flatten computes UV coordinates for every vertex of the mesh and stores them in Vertex.UV. The mesh needs at least one
// boundary loop; the longest one is pinned, and any further loops (holes) are left free. On error the mesh is left unchanged.
func (p *Parameterizer) Flatten(mesh *Mesh) error {

	loop := mesh.LongestBoundary()
	if loop == None {
		return errors.Wrapf(ErrNoBoundary, "can't flatten mesh %q", mesh.Name)
	}

	if len(mesh.Boundaries) > 1 {
		log.Printf("ddg: mesh %q has %d boundary loops; pinning loop %d, the rest stay free", mesh.Name, len(mesh.Boundaries), loop)
	}

	solver := p.Options.Solver
	if solver == nil {
		solver = linalg.NewAutoSolver()
	}

	fixed := mesh.BoundaryUVs(loop, p.Options.Boundary)
	a, rhsU, rhsV := mesh.InteriorSystem(p.Options.Weight, fixed)

	solved, err := linalg.SolveAll(solver, a, rhsU, rhsV)
	if err != nil {
		return errors.Wrapf(err, "flattening mesh %q", mesh.Name)
	}

	for v := range mesh.Vertices {
		mesh.Vertices[v].UV = NewVector2(solved[0][v], solved[1][v])
		mesh.Vertices[v].HasUV = true
	}

	return nil

}
