package ddg

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/solarlune/ddg/linalg"
)

// WeightScheme selects the edge weights of an assembled Laplacian.
type WeightScheme int

const (
	WeightUniform   WeightScheme = iota // Every edge weighs 1 (graph Laplacian)
	WeightCotangent                     // Edges weigh 0.5 * (cot α + cot β) (discrete Laplace-Beltrami)
)

func (w WeightScheme) String() string {
	if w == WeightCotangent {
		return "cotan"
	}
	return "uniform"
}

// ParseWeightScheme parses "uniform" or "cotan" / "cotangent" (case-insensitive).
func ParseWeightScheme(name string) (WeightScheme, error) {
	switch strings.ToLower(name) {
	case "uniform":
		return WeightUniform, nil
	case "cotan", "cotangent":
		return WeightCotangent, nil
	}
	return WeightUniform, errors.Wrapf(ErrInvalidInput, "unknown weight scheme %q", name)
}

// LaplaceRegularizer is subtracted from the diagonal of cotangent Laplacian rows, keeping them strictly diagonally
// dominant on near-degenerate meshes.
const LaplaceRegularizer = 1e-8

// minimumMass keeps zero-area vertices from zeroing out a row of the mass matrix.
const minimumMass = 1e-12

// EdgeWeight returns the weight of h's edge under the given scheme.
func (mesh *Mesh) EdgeWeight(h int, scheme WeightScheme) float64 {
	if scheme == WeightCotangent {
		return mesh.EdgeCotanWeight(h)
	}
	return 1
}

// laplaceRow adds row v of the Laplacian to t: the edge weight at each neighbor, and minus their sum on the diagonal.
func (mesh *Mesh) laplaceRow(t *linalg.Triplet, v int, scheme WeightScheme) {

	if mesh.Vertices[v].Halfedge == None {
		return
	}

	sum := 0.0

	mesh.VertexHalfedges(v, func(h int) bool {
		w := mesh.EdgeWeight(h, scheme)
		t.AddEntry(w, v, mesh.Dest(h))
		sum += w
		return true
	})

	diag := -sum
	if scheme == WeightCotangent {
		diag -= LaplaceRegularizer
	}

	t.AddEntry(diag, v, v)

}

// LaplaceMatrix assembles the n x n Laplacian of the mesh (n = vertex count) with the given weights. Off-diagonal entries
// are positive edge weights and each diagonal entry is minus its row's sum, so the matrix is negative semi-definite.
// Rows of isolated vertices are empty.
func (mesh *Mesh) LaplaceMatrix(scheme WeightScheme) *linalg.SparseMatrix {
	n := len(mesh.Vertices)
	t := linalg.NewTriplet(n, n)
	for v := range mesh.Vertices {
		mesh.laplaceRow(t, v, scheme)
	}
	return linalg.NewSparseMatrix(t)
}

// VertexMasses returns the mixed Voronoi area of every vertex. Isolated vertices get a mass of 1, so that they stay put
// in any system built from the mass matrix; zero-area vertices get a tiny positive mass.
func (mesh *Mesh) VertexMasses() []float64 {
	masses := make([]float64, len(mesh.Vertices))
	for v := range mesh.Vertices {
		if mesh.Vertices[v].Halfedge == None {
			masses[v] = 1
			continue
		}
		masses[v] = mesh.MixedVoronoiArea(v)
		if masses[v] < minimumMass {
			masses[v] = minimumMass
		}
	}
	return masses
}

// MassMatrix returns the diagonal matrix of VertexMasses.
func (mesh *Mesh) MassMatrix() *linalg.SparseMatrix {
	return linalg.Diagonal(mesh.VertexMasses(), len(mesh.Vertices))
}

// InteriorSystem assembles the Dirichlet system used to interpolate fixed values harmonically: the row of every vertex
// in fixed is replaced by an identity row whose right-hand side is its fixed value, and every other vertex keeps its
// Laplacian row with a zero right-hand side. Isolated vertices are pinned to zero. It returns the matrix along with
// the right-hand sides for the U and V coordinates.
func (mesh *Mesh) InteriorSystem(scheme WeightScheme, fixed map[int]Vector2) (*linalg.SparseMatrix, []float64, []float64) {

	n := len(mesh.Vertices)
	t := linalg.NewTriplet(n, n)
	rhsU := make([]float64, n)
	rhsV := make([]float64, n)

	for v := range mesh.Vertices {

		if target, ok := fixed[v]; ok {
			t.AddEntry(1, v, v)
			rhsU[v] = target.X
			rhsV[v] = target.Y
			continue
		}

		if mesh.Vertices[v].Halfedge == None {
			t.AddEntry(1, v, v)
			continue
		}

		mesh.laplaceRow(t, v, scheme)

	}

	return linalg.NewSparseMatrix(t), rhsU, rhsV

}
