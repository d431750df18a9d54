package ddg

import (
	"os"
	"path/filepath"
	"testing"
)

func BenchmarkLoadGLTFData(b *testing.B) {
	b.StopTimer()
	path := filepath.Join(b.TempDir(), "hemisphere.glb")
	if err := SaveGLTFFile(path, NewHemisphere(32, 64)); err != nil {
		b.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatal(err)
	}
	b.StartTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_, err = LoadGLTFData(data, nil)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestGLTFRoundTrip(t *testing.T) {

	mesh := NewHemisphere(4, 10)
	if err := NewParameterizer(nil).Flatten(mesh); err != nil {
		t.Fatal(err)
	}
	mesh.Properties.Get("author").Set("ddg")
	mesh.Properties.Get("scale").Set(2.5)

	for _, name := range []string{"hemisphere.glb", "hemisphere.gltf"} {

		path := filepath.Join(t.TempDir(), name)

		if err := SaveGLTFFile(path, mesh); err != nil {
			t.Fatal(err)
		}

		// Without welding, the vertex order survives as written.
		lib, err := LoadGLTFFile(path, &GLTFLoadOptions{KeepUVs: true})
		if err != nil {
			t.Fatal(err)
		}

		loaded := lib.FindMesh("Hemisphere")
		if loaded == nil {
			t.Fatalf("%s: expected a mesh named Hemisphere, found %v", name, lib.Names())
		}

		// Positions and UVs are stored as float32.
		compareMeshes(t, mesh, loaded, true, 1e-6)

		if loaded.Properties.Get("author").AsString() != "ddg" || loaded.Properties.Get("scale").AsFloat64() != 2.5 {
			t.Fatalf("%s: mesh properties should survive as extras, got author %v and scale %v", name, loaded.Properties.Get("author").Value, loaded.Properties.Get("scale").Value)
		}

		if loaded.Properties.Get("source").AsString() != path {
			t.Fatalf("%s: loaded mesh should remember its source file", name)
		}

		withoutUVs, err := LoadGLTFFile(path, &GLTFLoadOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if withoutUVs.First().HasUVs() {
			t.Fatalf("%s: UVs should be dropped when KeepUVs is off", name)
		}

	}

}

func TestGLTFWeldVertices(t *testing.T) {

	// Two triangles of a quad exported with split vertices, as along a UV seam.
	split, err := NewMesh("Split",
		[]Vector{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[]int{0, 1, 2, 3, 4, 5},
	)
	if err != nil {
		t.Fatal(err)
	}

	if len(split.Boundaries) != 2 {
		t.Fatal("unwelded quad should fall apart into two triangles, boundary loops:", len(split.Boundaries))
	}

	path := filepath.Join(t.TempDir(), "split.glb")
	if err := SaveGLTFFile(path, split); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadGLTFFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	welded := lib.First()

	if len(welded.Vertices) != 4 || len(welded.Edges) != 5 || len(welded.Boundaries) != 1 {
		t.Fatalf("welded quad should have 4 vertices, 5 edges, and 1 boundary loop; got %d, %d, %d", len(welded.Vertices), len(welded.Edges), len(welded.Boundaries))
	}

}

func TestWeldVertices(t *testing.T) {

	positions := []Vector{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	uvs := []Vector2{{0, 0}, {1, 0}, {0, 1}, {9, 9}, {0.5, 0}, {1, 1}, {0, 0.5}}
	indices := []int{0, 1, 2, 4, 5, 6}

	newPositions, newUVs, newIndices := weldVertices(positions, uvs, indices)

	if len(newPositions) != 4 {
		t.Fatal("expected 4 distinct referenced positions, got", len(newPositions))
	}

	expectedIndices := []int{0, 1, 2, 1, 3, 2}
	for i := range expectedIndices {
		if newIndices[i] != expectedIndices[i] {
			t.Fatalf("expected indices %v, got %v", expectedIndices, newIndices)
		}
	}

	// The first occurrence's UV wins.
	if !newUVs[1].Equals(NewVector2(1, 0)) || !newUVs[2].Equals(NewVector2(0, 1)) {
		t.Fatal("welded vertices should keep the UV of their first occurrence, got", newUVs)
	}

	for _, p := range newPositions {
		if p.Equals(NewVector(5, 5, 5)) {
			t.Fatal("unreferenced vertices should be dropped")
		}
	}

	if _, noUVs, _ := weldVertices(positions, nil, indices); noUVs != nil {
		t.Fatal("welding without UVs shouldn't make any up")
	}

}

func TestLoadGLTFDataErrors(t *testing.T) {

	if _, err := LoadGLTFData([]byte("this isn't glTF"), nil); err == nil {
		t.Fatal("expected an error for garbage data")
	}

	if _, err := LoadGLTFFile(filepath.Join(t.TempDir(), "missing.glb"), nil); err == nil {
		t.Fatal("expected an error for a missing file")
	}

}
