package ddg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func BenchmarkLaplaceMatrix(b *testing.B) {

	b.StopTimer()
	mesh := NewGrid(64, 64)
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		mesh.LaplaceMatrix(WeightCotangent)
	}

}

func TestUniformLaplacian(t *testing.T) {

	ico := NewIcosahedron()
	l := ico.LaplaceMatrix(WeightUniform)

	if n, m := l.Dims(); n != 12 || m != 12 {
		t.Fatalf("expected a 12x12 matrix, got %dx%d", n, m)
	}

	if !l.IsSymmetric(0) {
		t.Fatal("uniform Laplacian should be symmetric")
	}

	for v := range ico.Vertices {

		if sum := l.RowSum(v); sum != 0 {
			t.Fatalf("row %d sums to %f", v, sum)
		}

		if d := l.At(v, v); d != -5 {
			t.Fatalf("icosahedron vertices have 5 neighbors; diagonal %d is %f", v, d)
		}

		ico.VertexNeighbors(v, func(n int) bool {
			if l.At(v, n) != 1 {
				t.Fatalf("entry (%d, %d) should be 1, got %f", v, n, l.At(v, n))
			}
			return true
		})

	}

	// 12 diagonal entries plus two per edge.
	if l.NNZ() != 12+2*len(ico.Edges) {
		t.Fatal("unexpected number of stored entries:", l.NNZ())
	}

}

func TestCotanLaplacian(t *testing.T) {

	for _, mesh := range []*Mesh{NewIcosahedron(), NewHemisphere(4, 9), NewGrid(3, 3)} {

		l := mesh.LaplaceMatrix(WeightCotangent)

		if !l.IsSymmetric(1e-12) {
			t.Fatalf("%s: cotangent Laplacian should be symmetric", mesh.Name)
		}

		for v := range mesh.Vertices {
			if sum := l.RowSum(v); math.Abs(sum+LaplaceRegularizer) > 1e-12 {
				t.Fatalf("%s: row %d should sum to -%g, got %g", mesh.Name, v, LaplaceRegularizer, sum)
			}
		}

	}

	// The flat fan's Laplacian annihilates linear functions at its interior vertex.
	fan := NewHexFan()
	l := fan.LaplaceMatrix(WeightCotangent)
	x := make([]float64, len(fan.Vertices))
	for i, v := range fan.Vertices {
		x[i] = 2*v.Position.X - v.Position.Y
	}
	if r := l.MulVec(x)[0]; math.Abs(r) > 1e-9 {
		t.Fatal("Laplacian of a linear function should vanish at an interior vertex, got", r)
	}

}

func TestMassMatrix(t *testing.T) {

	mesh, err := NewMesh("Isolated", []Vector{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {3, 3, 3}}, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}

	masses := mesh.VertexMasses()

	if masses[3] != 1 {
		t.Fatal("isolated vertex should get a mass of 1, got", masses[3])
	}

	sum := masses[0] + masses[1] + masses[2]
	if math.Abs(sum-0.5) > 1e-12 {
		t.Fatal("masses of the triangle's corners should add up to its area, got", sum)
	}

	m := mesh.MassMatrix()
	for v := range mesh.Vertices {
		if m.At(v, v) != masses[v] {
			t.Fatalf("mass matrix diagonal %d doesn't match VertexMasses", v)
		}
	}

	if m.NNZ() != len(mesh.Vertices) {
		t.Fatal("mass matrix should be diagonal")
	}

}

func TestInteriorSystem(t *testing.T) {

	grid := NewGrid(2, 2)

	fixed := map[int]Vector2{}
	for _, v := range grid.LoopVertices(0) {
		p := grid.Vertices[v].Position
		fixed[v] = NewVector2(p.X, p.Y)
	}

	a, rhsU, rhsV := grid.InteriorSystem(WeightUniform, fixed)

	for v := range grid.Vertices {

		target, isFixed := fixed[v]

		if !isFixed {
			if rhsU[v] != 0 || rhsV[v] != 0 {
				t.Fatalf("free vertex %d should have a zero right-hand side", v)
			}
			if a.At(v, v) >= 0 {
				t.Fatalf("free vertex %d should keep its Laplacian row", v)
			}
			continue
		}

		if a.At(v, v) != 1 || a.RowSum(v) != 1 {
			t.Fatalf("fixed vertex %d should have an identity row", v)
		}

		if rhsU[v] != target.X || rhsV[v] != target.Y {
			t.Fatalf("fixed vertex %d has right-hand side (%f, %f), expected %v", v, rhsU[v], rhsV[v], target)
		}

	}

	if len(fixed) != 8 {
		t.Fatal("a 2x2 grid should have 8 boundary vertices, got", len(fixed))
	}

}

func TestParseWeightScheme(t *testing.T) {

	for _, scheme := range []WeightScheme{WeightUniform, WeightCotangent} {
		parsed, err := ParseWeightScheme(scheme.String())
		if err != nil || parsed != scheme {
			t.Fatalf("%s didn't parse back: %v, %v", scheme, parsed, err)
		}
	}

	if _, err := ParseWeightScheme("harmonic-ish"); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected ErrInvalidInput for an unknown scheme, got", err)
	}

}
