package ddg

import "math"

func mustMesh(name string, positions []Vector, indices []int) *Mesh {
	mesh, err := NewMesh(name, positions, indices)
	if err != nil {
		panic("Error: procedural mesh " + name + " failed to build: " + err.Error())
	}
	return mesh
}

// NewCube creates a closed cube Mesh spanning -1 to 1 on every axis: 8 vertices, 12 outward-facing triangles.
func NewCube() *Mesh {

	positions := []Vector{
		{-1, -1, -1},
		{1, -1, -1},
		{1, 1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
		{1, -1, 1},
		{1, 1, 1},
		{-1, 1, 1},
	}

	indices := []int{
		// Back (-Z)
		0, 3, 2,
		0, 2, 1,
		// Front (+Z)
		4, 5, 6,
		4, 6, 7,
		// Bottom (-Y)
		0, 1, 5,
		0, 5, 4,
		// Top (+Y)
		3, 7, 6,
		3, 6, 2,
		// Left (-X)
		0, 4, 7,
		0, 7, 3,
		// Right (+X)
		1, 2, 6,
		1, 6, 5,
	}

	return mustMesh("Cube", positions, indices)

}

// NewPlane creates a square Mesh made of two triangles, spanning -1 to 1 on X and Y and facing +Z.
func NewPlane() *Mesh {
	return mustMesh("Plane",
		[]Vector{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		[]int{0, 1, 2, 0, 2, 3},
	)
}

// NewIcosahedron creates a closed icosahedron Mesh with its 12 vertices on the unit sphere.
func NewIcosahedron() *Mesh {

	t := (1 + math.Sqrt(5)) / 2

	positions := []Vector{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}

	for i := range positions {
		positions[i] = positions[i].Unit()
	}

	indices := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return mustMesh("Icosahedron", positions, indices)

}

// NewHexFan creates a flat fan of six equilateral triangles (edge length 1) around a center vertex at the origin, facing +Z.
// Vertex 0 is the center.
func NewHexFan() *Mesh {

	positions := []Vector{{0, 0, 0}}
	indices := []int{}

	for i := 0; i < 6; i++ {
		angle := math.Pi / 3 * float64(i)
		positions = append(positions, NewVector(math.Cos(angle), math.Sin(angle), 0))
		indices = append(indices, 0, 1+i, 1+(i+1)%6)
	}

	return mustMesh("HexFan", positions, indices)

}

// NewHemisphere creates the upper half of the unit sphere, open along the equator, with outward-facing triangles.
// Vertex 0 is the pole; rings counts the vertex rings between the pole and the equator (the equator included), and
// segments the vertices per ring. Both are raised to their minimums (1 and 3) if needed.
func NewHemisphere(rings, segments int) *Mesh {

	rings = max(rings, 1)
	segments = max(segments, 3)

	positions := []Vector{{0, 0, 1}}

	for k := 1; k <= rings; k++ {
		phi := math.Pi / 2 * float64(k) / float64(rings)
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			positions = append(positions, NewVector(math.Sin(phi)*math.Cos(theta), math.Sin(phi)*math.Sin(theta), math.Cos(phi)))
		}
	}

	ring := func(k, j int) int {
		return 1 + (k-1)*segments + j%segments
	}

	indices := []int{}

	for j := 0; j < segments; j++ {
		indices = append(indices, 0, ring(1, j), ring(1, j+1))
	}

	for k := 1; k < rings; k++ {
		for j := 0; j < segments; j++ {
			a, b := ring(k, j), ring(k, j+1)
			c, d := ring(k+1, j+1), ring(k+1, j)
			indices = append(indices, a, d, c, a, c, b)
		}
	}

	return mustMesh("Hemisphere", positions, indices)

}

// NewGrid creates a flat, regular grid Mesh covering the unit square [0, 1]² in the XY plane, facing +Z, with the given
// number of cells along each side (each raised to at least 1). Vertex (i, j) has index j * (cols + 1) + i.
func NewGrid(cols, rows int) *Mesh {

	cols = max(cols, 1)
	rows = max(rows, 1)

	positions := []Vector{}
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			positions = append(positions, NewVector(float64(i)/float64(cols), float64(j)/float64(rows), 0))
		}
	}

	index := func(i, j int) int {
		return j*(cols+1) + i
	}

	indices := []int{}
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a, b := index(i, j), index(i+1, j)
			c, d := index(i+1, j+1), index(i, j+1)
			indices = append(indices, a, b, c, a, c, d)
		}
	}

	return mustMesh("Grid", positions, indices)

}
