package ddg

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// NormalWeighting selects how VertexNormal weighs the normals of the triangles around a vertex.
type NormalWeighting int

const (
	EqualWeighted NormalWeighting = iota // Every incident triangle counts the same
	AreaWeighted                         // Triangles are weighted by their area
	AngleWeighted                        // Triangles are weighted by their interior angle at the vertex
)

// CurvatureKind selects the quantity returned by Mesh.Curvature.
type CurvatureKind int

const (
	CurvatureMean CurvatureKind = iota
	CurvatureGaussian
	CurvatureMinPrincipal
	CurvatureMaxPrincipal
)

var curvatureKindNames = map[CurvatureKind]string{
	CurvatureMean:         "mean",
	CurvatureGaussian:     "gaussian",
	CurvatureMinPrincipal: "min",
	CurvatureMaxPrincipal: "max",
}

func (k CurvatureKind) String() string {
	return curvatureKindNames[k]
}

// ParseCurvatureKind parses "mean", "gaussian", "min" or "max" (case-insensitive).
func ParseCurvatureKind(name string) (CurvatureKind, error) {
	for kind, kindName := range curvatureKindNames {
		if strings.EqualFold(name, kindName) {
			return kind, nil
		}
	}
	return CurvatureMean, errors.Wrapf(ErrInvalidInput, "unknown curvature kind %q", name)
}

// EdgeVector returns the vector from the origin of halfedge h to its destination.
func (mesh *Mesh) EdgeVector(h int) Vector {
	he := mesh.Halfedges[h]
	return mesh.Vertices[mesh.Halfedges[he.Next].Vertex].Position.Sub(mesh.Vertices[he.Vertex].Position)
}

// EdgeLength returns the length of halfedge h.
func (mesh *Mesh) EdgeLength(h int) float64 {
	return mesh.EdgeVector(h).Magnitude()
}

// Cotan returns the cotangent of the angle opposite halfedge h in its triangle, or 0 for a boundary halfedge.
// A triangle too thin to have a meaningful angle also yields 0.
func (mesh *Mesh) Cotan(h int) float64 {

	he := mesh.Halfedges[h]
	if he.OnBoundary {
		return 0
	}

	// Both vectors start at the apex, the vertex h doesn't touch.
	u := mesh.EdgeVector(he.Prev)
	v := mesh.EdgeVector(he.Next).Invert()

	sin := u.Cross(v).Magnitude()
	if sin < 1e-12 {
		return 0
	}

	return u.Dot(v) / sin

}

// TipAngle returns the interior angle of h's triangle at h's origin vertex, in radians; boundary halfedges have no angle (0).
func (mesh *Mesh) TipAngle(h int) float64 {

	he := mesh.Halfedges[h]
	if he.OnBoundary {
		return 0
	}

	return mesh.EdgeVector(h).Angle(mesh.EdgeVector(he.Prev).Invert())

}

// faceCross returns the (unnormalized) cross product of the triangle owning h; zero for boundary halfedges.
func (mesh *Mesh) faceCross(h int) Vector {
	he := mesh.Halfedges[h]
	if he.OnBoundary {
		return Vector{}
	}
	return mesh.EdgeVector(h).Cross(mesh.EdgeVector(he.Prev).Invert())
}

// FaceNormal returns the unit normal of triangle f, following its winding order (counter-clockwise is front-facing).
// A zero-area triangle returns the zero Vector.
func (mesh *Mesh) FaceNormal(f int) Vector {
	return mesh.faceCross(mesh.Faces[f].Halfedge).Unit()
}

// FaceArea returns the area of triangle f.
func (mesh *Mesh) FaceArea(f int) float64 {
	return mesh.faceCross(mesh.Faces[f].Halfedge).Magnitude() * 0.5
}

// FaceCenter returns the centroid of triangle f.
func (mesh *Mesh) FaceCenter(f int) Vector {
	tri := mesh.FaceVertices(f)
	return mesh.Vertices[tri[0]].Position.Add(mesh.Vertices[tri[1]].Position).Add(mesh.Vertices[tri[2]].Position).Scale(1.0 / 3)
}

// TotalArea returns the summed area of all triangles.
func (mesh *Mesh) TotalArea() float64 {
	area := 0.0
	for f := range mesh.Faces {
		area += mesh.FaceArea(f)
	}
	return area
}

// VertexNormal returns the unit normal of vertex v, accumulated from the normals of its incident triangles using the given weighting.
// An isolated vertex, or one whose weighted normals cancel out, has the zero Vector as its normal.
func (mesh *Mesh) VertexNormal(v int, method NormalWeighting) Vector {

	n := NewVectorZero()

	mesh.VertexHalfedges(v, func(h int) bool {

		f := mesh.Halfedges[h].Face
		if f == None {
			return true
		}

		switch method {
		case AreaWeighted:
			n = n.Add(mesh.FaceNormal(f).Scale(mesh.FaceArea(f)))
		case AngleWeighted:
			n = n.Add(mesh.FaceNormal(f).Scale(mesh.TipAngle(h)))
		default:
			n = n.Add(mesh.FaceNormal(f))
		}

		return true

	})

	return n.Unit()

}

// VertexNormals returns VertexNormal for every vertex.
func (mesh *Mesh) VertexNormals(method NormalWeighting) []Vector {
	normals := make([]Vector, len(mesh.Vertices))
	for v := range mesh.Vertices {
		normals[v] = mesh.VertexNormal(v, method)
	}
	return normals
}

// MixedVoronoiArea returns the area of the mixed Voronoi cell around v (Meyer et al.): the circumcentric Voronoi area
// (|e1|² cot α + |e2|² cot β) / 8 from each non-obtuse incident triangle, and a half or a quarter of the triangle's area
// from obtuse ones, depending on whether the obtuse angle sits at v. The cells of all vertices tile the surface exactly.
func (mesh *Mesh) MixedVoronoiArea(v int) float64 {

	area := 0.0

	mesh.VertexHalfedges(v, func(h int) bool {

		he := mesh.Halfedges[h]
		if he.Face == None {
			return true
		}

		angleV := mesh.TipAngle(h)
		obtuse := angleV > math.Pi/2 || mesh.TipAngle(he.Next) > math.Pi/2 || mesh.TipAngle(he.Prev) > math.Pi/2

		if !obtuse {
			// h spans v -> b and is opposite the apex angle; prev spans c -> v and is opposite the angle at b.
			ab := mesh.EdgeVector(h).MagnitudeSquared()
			ac := mesh.EdgeVector(he.Prev).MagnitudeSquared()
			area += (ab*mesh.Cotan(h) + ac*mesh.Cotan(he.Prev)) / 8
		} else if angleV > math.Pi/2 {
			area += mesh.FaceArea(he.Face) / 2
		} else {
			area += mesh.FaceArea(he.Face) / 4
		}

		return true

	})

	return area

}

// EdgeCotanWeight returns the cotangent weight 0.5 * (cot α + cot β) of h's edge, where α and β are the angles opposite it.
func (mesh *Mesh) EdgeCotanWeight(h int) float64 {
	return 0.5 * (mesh.Cotan(h) + mesh.Cotan(mesh.Halfedges[h].Twin))
}

// LaplaceBeltrami returns the cotangent Laplace-Beltrami vector at v: the sum over neighbors j of
// 0.5 * (cot α + cot β) * (xj - xv). Divided by the vertex area it approximates the mean curvature normal, -2Hn.
func (mesh *Mesh) LaplaceBeltrami(v int) Vector {

	sum := NewVectorZero()
	origin := mesh.Vertices[v].Position

	mesh.VertexHalfedges(v, func(h int) bool {
		sum = sum.Add(mesh.Vertices[mesh.Dest(h)].Position.Sub(origin).Scale(mesh.EdgeCotanWeight(h)))
		return true
	})

	return sum

}

// MeanCurvature returns the mean curvature H at v: the length of the Laplace-Beltrami vector over twice the mixed Voronoi area,
// positive where the surface is convex (the vector points against the vertex normal, as everywhere on a sphere) and negative
// where it is concave.
func (mesh *Mesh) MeanCurvature(v int) float64 {

	area := mesh.MixedVoronoiArea(v)
	if area < 1e-12 {
		return 0
	}

	lb := mesh.LaplaceBeltrami(v)
	h := lb.Magnitude() / (2 * area)

	if lb.Dot(mesh.VertexNormal(v, AreaWeighted)) > 0 {
		h = -h
	}

	return h

}

// AngleDefect returns 2π minus the sum of the interior angles of the triangles around v: the integrated Gaussian curvature
// of the vertex's cell. Isolated vertices have no defect.
func (mesh *Mesh) AngleDefect(v int) float64 {

	if mesh.Vertices[v].Halfedge == None {
		return 0
	}

	sum := 0.0
	mesh.VertexHalfedges(v, func(h int) bool {
		sum += mesh.TipAngle(h)
		return true
	})

	return 2*math.Pi - sum

}

// GaussianCurvature returns the discrete Gaussian curvature at v, as the angle defect.
func (mesh *Mesh) GaussianCurvature(v int) float64 {
	return mesh.AngleDefect(v)
}

// GaussianCurvatureDensity returns the angle defect at v divided by its mixed Voronoi area; this pointwise value has
// the same units as H².
func (mesh *Mesh) GaussianCurvatureDensity(v int) float64 {
	area := mesh.MixedVoronoiArea(v)
	if area < 1e-12 {
		return 0
	}
	return mesh.AngleDefect(v) / area
}

// TotalGaussianCurvature returns the summed angle defect of all vertices; for a closed surface this is 2π times its Euler characteristic.
func (mesh *Mesh) TotalGaussianCurvature() float64 {
	total := 0.0
	for v := range mesh.Vertices {
		total += mesh.AngleDefect(v)
	}
	return total
}

// PrincipalCurvatures returns the principal curvatures k1 <= k2 at v, from the mean curvature H and the pointwise Gaussian
// curvature K as H ∓ sqrt(H² - K). Where H² < K (round-off at umbilic points), both equal H.
func (mesh *Mesh) PrincipalCurvatures(v int) (float64, float64) {

	h := mesh.MeanCurvature(v)
	k := mesh.GaussianCurvatureDensity(v)

	d := math.Sqrt(math.Max(h*h-k, 0))

	return h - d, h + d

}

// Curvature returns the curvature of the given kind at v.
func (mesh *Mesh) Curvature(v int, kind CurvatureKind) float64 {
	switch kind {
	case CurvatureGaussian:
		return mesh.GaussianCurvature(v)
	case CurvatureMinPrincipal:
		k1, _ := mesh.PrincipalCurvatures(v)
		return k1
	case CurvatureMaxPrincipal:
		_, k2 := mesh.PrincipalCurvatures(v)
		return k2
	}
	return mesh.MeanCurvature(v)
}
