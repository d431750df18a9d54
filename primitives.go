package ddg

// None marks an absent reference in the Mesh's arenas (for example, the Face of a boundary Halfedge).
const None = -1

// Vertex is a mesh vertex. Vertices, like every other primitive, live in a slice owned by their Mesh and refer to each other by index.
type Vertex struct {
	Position Vector
	UV       Vector2 // Texture coordinate; only meaningful if HasUV is true (i.e. after parameterization or loading UVs).
	HasUV    bool
	Halfedge int // An outgoing Halfedge; for boundary vertices this is the outgoing boundary Halfedge. None for isolated vertices.
	Index    int
}

// Halfedge is one directed side of an Edge. It runs from Vertex (its origin) to Next's origin.
type Halfedge struct {
	Vertex     int // Origin vertex
	Edge       int
	Face       int // Owning triangle; None for boundary halfedges
	Loop       int // Owning boundary loop (index into Mesh.Boundaries); None for interior halfedges
	Next       int
	Prev       int
	Twin       int
	OnBoundary bool
	Index      int
}

// Edge is an undirected edge; Halfedge is either of its two halfedges.
type Edge struct {
	Halfedge int
	Index    int
}

// Face is either a triangle (in Mesh.Faces) or a boundary loop (in Mesh.Boundaries, with Boundary set).
type Face struct {
	Halfedge int
	Boundary bool
	Index    int
}

// Dest returns the vertex index that the given halfedge points to.
func (mesh *Mesh) Dest(h int) int {
	return mesh.Halfedges[mesh.Halfedges[h].Next].Vertex
}

// VertexHalfedges calls forEach with every halfedge leaving vertex v, walking the one-ring through h.Twin.Next.
// Boundary halfedges are included (their Face is None). Iteration stops early if forEach returns false.
func (mesh *Mesh) VertexHalfedges(v int, forEach func(h int) bool) {
	start := mesh.Vertices[v].Halfedge
	if start == None {
		return
	}
	h := start
	// The bound only matters for broken connectivity; on a valid mesh the ring closes well before it.
	for steps := 0; steps < len(mesh.Halfedges); steps++ {
		if !forEach(h) {
			return
		}
		h = mesh.Halfedges[mesh.Halfedges[h].Twin].Next
		if h == start {
			return
		}
	}
}

// VertexNeighbors calls forEach with every vertex adjacent to v, once each.
func (mesh *Mesh) VertexNeighbors(v int, forEach func(n int) bool) {
	mesh.VertexHalfedges(v, func(h int) bool {
		return forEach(mesh.Dest(h))
	})
}

// VertexFaces calls forEach with every triangle incident to v.
func (mesh *Mesh) VertexFaces(v int, forEach func(f int) bool) {
	mesh.VertexHalfedges(v, func(h int) bool {
		f := mesh.Halfedges[h].Face
		if f == None {
			return true
		}
		return forEach(f)
	})
}

// Valence returns the number of edges incident to v.
func (mesh *Mesh) Valence(v int) int {
	n := 0
	mesh.VertexHalfedges(v, func(int) bool {
		n++
		return true
	})
	return n
}

// IsBoundaryVertex returns true if v lies on a boundary loop.
func (mesh *Mesh) IsBoundaryVertex(v int) bool {
	h := mesh.Vertices[v].Halfedge
	return h != None && mesh.Halfedges[h].OnBoundary
}

func (mesh *Mesh) faceLoop(start int, forEach func(h int) bool) {
	h := start
	for steps := 0; steps < len(mesh.Halfedges); steps++ {
		if !forEach(h) {
			return
		}
		h = mesh.Halfedges[h].Next
		if h == start {
			return
		}
	}
}

// FaceHalfedges calls forEach with the three halfedges of triangle f, in winding order.
func (mesh *Mesh) FaceHalfedges(f int, forEach func(h int) bool) {
	mesh.faceLoop(mesh.Faces[f].Halfedge, forEach)
}

// FaceVertices returns the three vertex indices of triangle f, in winding order.
func (mesh *Mesh) FaceVertices(f int) [3]int {
	h := mesh.Faces[f].Halfedge
	he := mesh.Halfedges[h]
	return [3]int{he.Vertex, mesh.Halfedges[he.Next].Vertex, mesh.Halfedges[he.Prev].Vertex}
}

// LoopHalfedges calls forEach with every halfedge of boundary loop b, in loop order.
func (mesh *Mesh) LoopHalfedges(b int, forEach func(h int) bool) {
	mesh.faceLoop(mesh.Boundaries[b].Halfedge, forEach)
}

// LoopVertices returns the vertices of boundary loop b in loop order.
func (mesh *Mesh) LoopVertices(b int) []int {
	verts := []int{}
	mesh.LoopHalfedges(b, func(h int) bool {
		verts = append(verts, mesh.Halfedges[h].Vertex)
		return true
	})
	return verts
}

// LoopLength returns the summed edge length of boundary loop b.
func (mesh *Mesh) LoopLength(b int) float64 {
	length := 0.0
	mesh.LoopHalfedges(b, func(h int) bool {
		length += mesh.EdgeVector(h).Magnitude()
		return true
	})
	return length
}
