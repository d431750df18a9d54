package ddg

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestMatrix4Rotate(t *testing.T) {

	rotate := NewMatrix4Rotate(0, 0, 1, math.Pi/2)

	if v := rotate.MultVec(NewVector(1, 0, 0)); !v.Equals(NewVector(0, 1, 0)) {
		t.Fatal("a quarter turn around +Z should take +X to +Y, got", v)
	}

	half := math.Sin(math.Pi / 4)
	quat := NewQuaternion(0, 0, half, half)

	if !quat.ToMatrix4().Equals(rotate) {
		t.Fatalf("quaternion and axis-angle rotations differ:\n%s\n%s", quat.ToMatrix4(), rotate)
	}

	// Quaternions are normalized before use.
	if !NewQuaternion(0, 0, 3, 3).ToMatrix4().Equals(rotate) {
		t.Fatal("scaled quaternion should give the same rotation")
	}

	if !(Quaternion{}).ToMatrix4().IsIdentity() {
		t.Fatal("zero quaternion should give the identity")
	}

	if d := rotate.Determinant(); math.Abs(d-1) > 1e-12 {
		t.Fatal("rotations should keep volume, determinant is", d)
	}

}

func TestMatrix4TRS(t *testing.T) {

	trs := NewMatrix4TRS(NewVector(1, 2, 3), NewQuaternion(0, 0, math.Sin(math.Pi/4), math.Cos(math.Pi/4)), NewVector(2, 2, 2))

	// Scaled to (2, 0, 0), turned to (0, 2, 0), then moved.
	if v := trs.MultVec(NewVector(1, 0, 0)); !v.Equals(NewVector(1, 4, 3)) {
		t.Fatal("expected the point to be scaled, rotated, and translated in that order, got", v)
	}

	// glTF stores matrices column by column, translation last.
	columns := [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 1, 2, 3, 1}
	if m := NewMatrix4FromColumns(columns); !m.Equals(NewMatrix4Scale(2, 2, 2).Mult(NewMatrix4Translate(1, 2, 3))) {
		t.Fatal("unexpected matrix from columns:\n", m)
	}

}

func TestTransformGeometryMirror(t *testing.T) {

	cube := NewCube()

	positions, indices := TransformGeometry(NewMatrix4Scale(-1, 1, 1), cube.Positions(), cube.Indices())

	mirrored, err := NewMesh("Mirrored", positions, indices)
	if err != nil {
		t.Fatal(err)
	}

	for f := range mirrored.Faces {
		if mirrored.FaceNormal(f).Dot(mirrored.FaceCenter(f)) <= 0 {
			t.Fatalf("face %d of the mirrored cube points inward", f)
		}
	}

	if cube.Vertices[1].Position.X != 1 {
		t.Fatal("TransformGeometry shouldn't modify its input")
	}

}

func TestLoadGLTFNodeTransforms(t *testing.T) {

	doc := NewGLTFDocument(NewCube())

	child := doc.Nodes[0]
	child.Scale[0], child.Scale[1], child.Scale[2] = 2, 2, 2
	child.Translation[0] = 5

	parent := &gltf.Node{Name: "Parent"}
	parent.Matrix[0], parent.Matrix[5], parent.Matrix[10], parent.Matrix[15] = 1, 1, 1, 1
	parent.Rotation[3] = 1
	parent.Scale[0], parent.Scale[1], parent.Scale[2] = 1, 1, 1
	parent.Translation[1] = 3
	parent.Children = append(parent.Children, 0)
	doc.Nodes = append(doc.Nodes, parent)
	doc.Scenes[0].Nodes[0] = 1

	path := filepath.Join(t.TempDir(), "moved.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadGLTFFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	cube := lib.First()

	if p := cube.Vertices[0].Position; !p.Equals(NewVector(3, 1, -2)) {
		t.Fatal("corner (-1, -1, -1) should be scaled by the child, then moved by both nodes, got", p)
	}

	if area := cube.TotalArea(); math.Abs(area-96) > 1e-9 {
		t.Fatal("doubling the cube's size should quadruple its area to 96, got", area)
	}

	untouched, err := LoadGLTFFile(path, &GLTFLoadOptions{WeldVertices: true})
	if err != nil {
		t.Fatal(err)
	}

	if p := untouched.First().Vertices[0].Position; !p.Equals(NewVector(-1, -1, -1)) {
		t.Fatal("without ApplyTransforms, positions should stay as stored, got", p)
	}

}
