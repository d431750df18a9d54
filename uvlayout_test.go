package ddg

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func BenchmarkRenderUVLayout(b *testing.B) {

	b.StopTimer()
	mesh := NewHemisphere(16, 32)
	if err := NewParameterizer(nil).Flatten(mesh); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.StartTimer()

	for i := 0; i < b.N; i++ {
		if _, err := RenderUVLayout(mesh, nil); err != nil {
			b.Fatal(err)
		}
	}

}

// planarUVs sets every vertex's UV to its X and Y position.
func planarUVs(mesh *Mesh) {
	for i := range mesh.Vertices {
		p := mesh.Vertices[i].Position
		mesh.Vertices[i].UV = NewVector2(p.X, p.Y)
		mesh.Vertices[i].HasUV = true
	}
}

func TestUVArea(t *testing.T) {

	grid := NewGrid(3, 3)
	planarUVs(grid)

	total := 0.0
	for f := range grid.Faces {
		if math.Abs(grid.UVArea(f)-grid.FaceArea(f)) > 1e-12 {
			t.Fatalf("face %d: planar UVs should keep the face's area %f, got %f", f, grid.FaceArea(f), grid.UVArea(f))
		}
		if d := grid.UVAreaDistortion(f); math.Abs(d) > 1e-12 {
			t.Fatalf("face %d: planar UVs shouldn't distort, got %f", f, d)
		}
		total += grid.UVArea(f)
	}

	if math.Abs(total-1) > 1e-12 {
		t.Fatal("UV areas of the unit grid should add up to 1, got", total)
	}

	if len(grid.FlippedUVFaces()) != 0 {
		t.Fatal("planar UVs shouldn't flip any face")
	}

	// Mirroring the UVs flips every face.
	for i := range grid.Vertices {
		grid.Vertices[i].UV.X *= -1
	}

	if flipped := grid.FlippedUVFaces(); len(flipped) != len(grid.Faces) {
		t.Fatalf("mirrored UVs should flip all %d faces, flipped %d", len(grid.Faces), len(flipped))
	}

}

func TestDivergingColor(t *testing.T) {

	tests := []struct {
		value, limit float64
		color        Color
	}{
		{0, 2, colorNeutral},
		{2, 2, colorHot},
		{5, 2, colorHot},
		{-4, 2, colorCold},
		{math.NaN(), 2, colorNeutral},
		{1, 0, colorNeutral},
	}

	same := func(a, b Color) bool {
		return math.Abs(float64(a.R-b.R)) < 1e-6 && math.Abs(float64(a.G-b.G)) < 1e-6 &&
			math.Abs(float64(a.B-b.B)) < 1e-6 && math.Abs(float64(a.A-b.A)) < 1e-6
	}

	for _, test := range tests {
		if c := DivergingColor(test.value, test.limit); !same(c, test.color) {
			t.Fatalf("DivergingColor(%f, %f) = %v, expected %v", test.value, test.limit, c, test.color)
		}
	}

	half := DivergingColor(-1, 2)
	if half.B <= colorNeutral.B || half.R >= colorNeutral.R {
		t.Fatal("negative values should lean towards blue, got", half)
	}

}

func TestRenderUVLayoutPixels(t *testing.T) {

	tri, err := NewMesh("Triangle", []Vector{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	planarUVs(tri)

	img, err := RenderUVLayout(tri, &UVLayoutOptions{Size: 64, EdgeWidth: 0, DistortionMax: 2})
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatal("expected a 64x64 image, got", img.Bounds())
	}

	// V points up, so the triangle fills the lower left half of the image.
	inside := img.NRGBAAt(5, 58)
	expected := colorNeutral.ToNRGBA()
	near := func(a, b uint8) bool {
		return math.Abs(float64(a)-float64(b)) <= 2
	}

	if !near(inside.R, expected.R) || !near(inside.G, expected.G) || !near(inside.B, expected.B) || !near(inside.A, expected.A) {
		t.Fatalf("pixel inside the triangle should be %v, got %v", expected, inside)
	}

	if outside := img.NRGBAAt(58, 5); outside.A != 0 {
		t.Fatal("pixel outside the triangle should stay transparent, got", outside)
	}

}

func TestRenderUVLayoutDisk(t *testing.T) {

	mesh := NewHemisphere(4, 12)
	if err := NewParameterizer(nil).Flatten(mesh); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "layout.png")
	if err := SaveUVLayoutPNG(path, mesh, &UVLayoutOptions{Size: 64, Margin: 4, EdgeWidth: 1, DistortionMax: 2}); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Fatal("corner of a disk layout should stay transparent")
	}

	if _, _, _, a := img.At(32, 32).RGBA(); a == 0 {
		t.Fatal("center of a disk layout should be drawn")
	}

}

func TestRenderUVLayoutErrors(t *testing.T) {

	if _, err := RenderUVLayout(NewCube(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected ErrInvalidInput for a mesh without UVs, got", err)
	}

	grid := NewGrid(1, 1)
	planarUVs(grid)

	if _, err := RenderUVLayout(grid, &UVLayoutOptions{Size: 10, Margin: 5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected ErrInvalidInput for a margin that fills the image, got", err)
	}

}
