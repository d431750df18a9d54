package ddg

import (
	"math"

	"github.com/pkg/errors"
)

// Dimensions represents the minimum and maximum spatial dimensions of a Mesh.
type Dimensions [2]Vector

// Center returns the center point inbetween the two corners of the dimension set.
func (dim Dimensions) Center() Vector {
	return dim[0].Add(dim[1]).Scale(0.5)
}

func (dim Dimensions) Width() float64 {
	return dim[1].X - dim[0].X
}

func (dim Dimensions) Height() float64 {
	return dim[1].Y - dim[0].Y
}

func (dim Dimensions) Depth() float64 {
	return dim[1].Z - dim[0].Z
}

// MaxSpan returns the maximum span out of width, height, and depth.
func (dim Dimensions) MaxSpan() float64 {
	return math.Max(math.Max(dim.Width(), dim.Height()), dim.Depth())
}

// Mesh is a half-edge mesh. It owns every primitive in flat slices; primitives refer to one another by index,
// so a Mesh can be copied, inspected and serialized without any pointer cycles.
// Only vertex positions and UVs change after construction.
type Mesh struct {
	Name       string
	Vertices   []Vertex
	Edges      []Edge
	Faces      []Face     // Triangles
	Halfedges  []Halfedge // Interior halfedges and boundary halfedges
	Boundaries []Face     // One Face (with Boundary set) per boundary loop
	Dimensions Dimensions
	Properties *Properties
}

type directedEdge struct {
	from, to int
}

// NewMesh builds the half-edge connectivity for a triangle mesh from a position list and a flat list of 0-based
// vertex index triples. The triangles must describe an orientable 2-manifold (possibly with boundary) with consistent winding.
// If the input breaks one of those rules, NewMesh returns nil and an error wrapping ErrInvalidInput.
//
// Every undirected edge gets two halfedges. An edge used by only one triangle has its other halfedge marked OnBoundary;
// boundary halfedges are linked into loops (Mesh.Boundaries), so the one-ring around every vertex is a closed cycle.
func NewMesh(name string, positions []Vector, indices []int) (*Mesh, error) {

	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}

	if len(indices)%3 != 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "index count %d is not divisible by 3", len(indices))
	}

	triCount := len(indices) / 3

	mesh := &Mesh{
		Name:       name,
		Vertices:   make([]Vertex, len(positions)),
		Edges:      make([]Edge, 0, triCount*3/2+1),
		Faces:      make([]Face, 0, triCount),
		Halfedges:  make([]Halfedge, 0, triCount*3+triCount/2),
		Boundaries: []Face{},
		Properties: NewProperties(),
	}

	for i, p := range positions {
		mesh.Vertices[i] = Vertex{Position: p, Halfedge: None, Index: i}
	}

	// Halfedges synthesized as the twin of an already-seen triangle edge, waiting for the triangle that owns them.
	pending := map[directedEdge]int{}
	used := map[directedEdge]bool{}

	for t := 0; t < triCount; t++ {

		tri := [3]int{indices[t*3], indices[t*3+1], indices[t*3+2]}

		for _, v := range tri {
			if v < 0 || v >= len(positions) {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "triangle %d references vertex %d (vertex count %d)", t, v, len(positions))
			}
		}

		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, errors.Wrapf(ErrDegenerateTriangle, "triangle %d has vertices %v", t, tri)
		}

		var hs [3]int

		for j := 0; j < 3; j++ {

			a, b := tri[j], tri[(j+1)%3]
			key := directedEdge{a, b}

			if h, ok := pending[key]; ok {
				delete(pending, key)
				hs[j] = h
			} else if used[key] {
				return nil, errors.Wrapf(ErrInconsistentWinding, "triangle %d reuses edge %d -> %d", t, a, b)
			} else {
				e := len(mesh.Edges)
				h := len(mesh.Halfedges)
				mesh.Edges = append(mesh.Edges, Edge{Halfedge: h, Index: e})
				mesh.Halfedges = append(mesh.Halfedges,
					Halfedge{Vertex: a, Edge: e, Face: None, Loop: None, Next: None, Prev: None, Twin: h + 1, Index: h},
					Halfedge{Vertex: b, Edge: e, Face: None, Loop: None, Next: None, Prev: None, Twin: h, Index: h + 1},
				)
				pending[directedEdge{b, a}] = h + 1
				hs[j] = h
			}

			used[key] = true

		}

		f := len(mesh.Faces)
		mesh.Faces = append(mesh.Faces, Face{Halfedge: hs[0], Index: f})

		for j := 0; j < 3; j++ {
			he := &mesh.Halfedges[hs[j]]
			he.Face = f
			he.Next = hs[(j+1)%3]
			he.Prev = hs[(j+2)%3]
			mesh.Vertices[tri[j]].Halfedge = hs[j]
		}

	}

	if err := mesh.linkBoundaries(); err != nil {
		return nil, err
	}

	if err := mesh.checkVertexRings(); err != nil {
		return nil, err
	}

	mesh.UpdateBounds()

	return mesh, nil

}

// linkBoundaries marks every halfedge no triangle claimed as a boundary halfedge and stitches them into loops.
func (mesh *Mesh) linkBoundaries() error {

	outgoing := map[int]int{}

	for i := range mesh.Halfedges {
		he := &mesh.Halfedges[i]
		if he.Face != None {
			continue
		}
		he.OnBoundary = true
		if other, exists := outgoing[he.Vertex]; exists {
			return errors.Wrapf(ErrNonManifold, "vertex %d has two outgoing boundary halfedges (%d, %d)", he.Vertex, other, i)
		}
		outgoing[he.Vertex] = i
		// Starting a boundary vertex's ring at its boundary halfedge makes one-ring walks begin and end on the boundary.
		mesh.Vertices[he.Vertex].Halfedge = i
	}

	visited := make([]bool, len(mesh.Halfedges))

	for i := range mesh.Halfedges {

		if !mesh.Halfedges[i].OnBoundary || visited[i] {
			continue
		}

		loop := len(mesh.Boundaries)
		mesh.Boundaries = append(mesh.Boundaries, Face{Halfedge: i, Boundary: true, Index: loop})

		current := i
		for {
			visited[current] = true
			mesh.Halfedges[current].Loop = loop

			dest := mesh.Halfedges[mesh.Halfedges[current].Twin].Vertex
			next, ok := outgoing[dest]
			if !ok {
				return errors.Wrapf(ErrNonManifold, "boundary loop %d dead-ends at vertex %d", loop, dest)
			}

			mesh.Halfedges[current].Next = next
			mesh.Halfedges[next].Prev = current

			if next == i {
				break
			}

			if visited[next] {
				return errors.Wrapf(ErrNonManifold, "boundary loop %d re-enters itself at vertex %d", loop, dest)
			}

			current = next
		}

	}

	return nil

}

// checkVertexRings verifies that walking each vertex's one-ring visits every halfedge leaving it; a vertex whose
// incident triangles form more than one fan (two cones touching at a tip, say) is rejected.
func (mesh *Mesh) checkVertexRings() error {

	outgoing := make([]int, len(mesh.Vertices))
	for _, he := range mesh.Halfedges {
		outgoing[he.Vertex]++
	}

	for v := range mesh.Vertices {
		if valence := mesh.Valence(v); valence != outgoing[v] {
			return errors.Wrapf(ErrNonManifold, "vertex %d has %d outgoing halfedges but its one-ring only reaches %d", v, outgoing[v], valence)
		}
	}

	return nil

}

// Validate checks the combinatorial invariants of the mesh: twin/next/prev symmetry, matching origins,
// consistent face and loop membership, and boundary flags. It returns nil if no issues were found.
// A mesh built by NewMesh always validates; Validate is useful after editing connectivity by hand, or for debugging.
func (mesh *Mesh) Validate() error {

	halfedges := len(mesh.Halfedges)

	for i, he := range mesh.Halfedges {

		if he.Index != i {
			return errors.Errorf("halfedge %d has index %d", i, he.Index)
		}

		for _, link := range []struct {
			name        string
			index, size int
			optional    bool
		}{
			{"twin", he.Twin, halfedges, false},
			{"next", he.Next, halfedges, false},
			{"prev", he.Prev, halfedges, false},
			{"vertex", he.Vertex, len(mesh.Vertices), false},
			{"edge", he.Edge, len(mesh.Edges), false},
			{"face", he.Face, len(mesh.Faces), true},
			{"loop", he.Loop, len(mesh.Boundaries), true},
		} {
			if link.optional && link.index == None {
				continue
			}
			if !inRange(link.index, link.size) {
				return errors.Errorf("halfedge %d: %s %d out of range", i, link.name, link.index)
			}
		}

		if mesh.Halfedges[he.Twin].Twin != i {
			return errors.Errorf("halfedge %d: twin.twin != self", i)
		}

		if mesh.Halfedges[he.Next].Prev != i || mesh.Halfedges[he.Prev].Next != i {
			return errors.Errorf("halfedge %d: next/prev links are not symmetric", i)
		}

		if mesh.Halfedges[he.Twin].Vertex != mesh.Dest(i) {
			return errors.Errorf("halfedge %d: twin does not start where it ends", i)
		}

		if mesh.Halfedges[he.Twin].Edge != he.Edge {
			return errors.Errorf("halfedge %d: twin belongs to another edge", i)
		}

		if he.OnBoundary != (he.Face == None) || he.OnBoundary == (he.Loop == None) {
			return errors.Errorf("halfedge %d: boundary flag disagrees with face / loop membership", i)
		}

		if he.OnBoundary && mesh.Halfedges[he.Twin].OnBoundary {
			return errors.Errorf("halfedge %d: both halves of edge %d are on the boundary", i, he.Edge)
		}

		next := mesh.Halfedges[he.Next]
		if next.Face != he.Face || next.Loop != he.Loop {
			return errors.Errorf("halfedge %d: next halfedge belongs to another face", i)
		}

	}

	for i, e := range mesh.Edges {
		if !inRange(e.Halfedge, halfedges) {
			return errors.Errorf("edge %d: halfedge %d out of range", i, e.Halfedge)
		}
		if mesh.Halfedges[e.Halfedge].Edge != i {
			return errors.Errorf("edge %d: halfedge belongs to edge %d", i, mesh.Halfedges[e.Halfedge].Edge)
		}
	}

	for i, f := range mesh.Faces {
		if !inRange(f.Halfedge, halfedges) {
			return errors.Errorf("face %d: halfedge %d out of range", i, f.Halfedge)
		}
		if mesh.Halfedges[f.Halfedge].Face != i {
			return errors.Errorf("face %d: halfedge belongs to face %d", i, mesh.Halfedges[f.Halfedge].Face)
		}
	}

	for i, b := range mesh.Boundaries {
		if !inRange(b.Halfedge, halfedges) {
			return errors.Errorf("boundary %d: halfedge %d out of range", i, b.Halfedge)
		}
		if mesh.Halfedges[b.Halfedge].Loop != i {
			return errors.Errorf("boundary %d: halfedge belongs to loop %d", i, mesh.Halfedges[b.Halfedge].Loop)
		}
	}

	for i, v := range mesh.Vertices {
		if v.Halfedge != None && !inRange(v.Halfedge, halfedges) {
			return errors.Errorf("vertex %d: halfedge %d out of range", i, v.Halfedge)
		}
		if v.Halfedge != None && mesh.Halfedges[v.Halfedge].Vertex != i {
			return errors.Errorf("vertex %d: representative halfedge starts at vertex %d", i, mesh.Halfedges[v.Halfedge].Vertex)
		}
	}

	return nil

}

func inRange(index, size int) bool {
	return index >= 0 && index < size
}

// Clone returns a deep copy of the Mesh.
func (mesh *Mesh) Clone() *Mesh {
	newMesh := &Mesh{
		Name:       mesh.Name,
		Vertices:   append([]Vertex{}, mesh.Vertices...),
		Edges:      append([]Edge{}, mesh.Edges...),
		Faces:      append([]Face{}, mesh.Faces...),
		Halfedges:  append([]Halfedge{}, mesh.Halfedges...),
		Boundaries: append([]Face{}, mesh.Boundaries...),
		Dimensions: mesh.Dimensions,
		Properties: mesh.Properties.Clone(),
	}
	return newMesh
}

// UpdateBounds updates the mesh's dimensions; call this after manually changing vertex positions.
func (mesh *Mesh) UpdateBounds() {

	if len(mesh.Vertices) == 0 {
		mesh.Dimensions = Dimensions{}
		return
	}

	min := NewVector(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	max := NewVector(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)

	for _, v := range mesh.Vertices {
		min = NewVector(math.Min(min.X, v.Position.X), math.Min(min.Y, v.Position.Y), math.Min(min.Z, v.Position.Z))
		max = NewVector(math.Max(max.X, v.Position.X), math.Max(max.Y, v.Position.Y), math.Max(max.Z, v.Position.Z))
	}

	mesh.Dimensions = Dimensions{min, max}

}

// Positions returns a copy of every vertex position, in vertex order.
func (mesh *Mesh) Positions() []Vector {
	positions := make([]Vector, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
	}
	return positions
}

// SetPositions overwrites every vertex position; positions must hold exactly one entry per vertex.
func (mesh *Mesh) SetPositions(positions []Vector) error {
	if len(positions) != len(mesh.Vertices) {
		return errors.Wrapf(ErrInvalidInput, "got %d positions for %d vertices", len(positions), len(mesh.Vertices))
	}
	for i := range mesh.Vertices {
		mesh.Vertices[i].Position = positions[i]
	}
	mesh.UpdateBounds()
	return nil
}

// Indices returns the flattened vertex index triples of every triangle, in face order.
func (mesh *Mesh) Indices() []int {
	indices := make([]int, 0, len(mesh.Faces)*3)
	for f := range mesh.Faces {
		tri := mesh.FaceVertices(f)
		indices = append(indices, tri[0], tri[1], tri[2])
	}
	return indices
}

// HasUVs returns true if every vertex carries a UV coordinate.
func (mesh *Mesh) HasUVs() bool {
	for _, v := range mesh.Vertices {
		if !v.HasUV {
			return false
		}
	}
	return len(mesh.Vertices) > 0
}

// UVs returns a copy of every vertex's UV coordinate, in vertex order.
func (mesh *Mesh) UVs() []Vector2 {
	uvs := make([]Vector2, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		uvs[i] = v.UV
	}
	return uvs
}

// EulerCharacteristic returns V - E + F, counting triangles only.
func (mesh *Mesh) EulerCharacteristic() int {
	return len(mesh.Vertices) - len(mesh.Edges) + len(mesh.Faces)
}

// Genus returns the genus of the surface, assuming it is connected and has no isolated vertices.
func (mesh *Mesh) Genus() int {
	return (2 - mesh.EulerCharacteristic() - len(mesh.Boundaries)) / 2
}
