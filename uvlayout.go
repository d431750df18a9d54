package ddg

import (
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/pkg/errors"
	xvector "golang.org/x/image/vector"
)

// UVArea returns the signed area of face f in UV space; it's positive when the face keeps its winding after flattening.
func (mesh *Mesh) UVArea(f int) float64 {
	tri := mesh.FaceVertices(f)
	a := mesh.Vertices[tri[0]].UV
	b := mesh.Vertices[tri[1]].UV
	c := mesh.Vertices[tri[2]].UV
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// FlippedUVFaces returns the faces whose UV triangles are folded over (zero or negative signed UV area).
func (mesh *Mesh) FlippedUVFaces() []int {
	flipped := []int{}
	for f := range mesh.Faces {
		if mesh.UVArea(f) <= 0 {
			flipped = append(flipped, f)
		}
	}
	return flipped
}

// UVAreaDistortion returns log2 of the ratio between face f's share of the total UV area and its share of the total
// surface area: 0 means the face kept its relative size, 1 that it doubled, -1 that it halved.
func (mesh *Mesh) UVAreaDistortion(f int) float64 {

	totalUV := 0.0
	for g := range mesh.Faces {
		totalUV += math.Abs(mesh.UVArea(g))
	}

	return mesh.uvAreaDistortion(f, totalUV, mesh.TotalArea())

}

func (mesh *Mesh) uvAreaDistortion(f int, totalUV, total float64) float64 {
	area := mesh.FaceArea(f)
	uvArea := math.Abs(mesh.UVArea(f))
	if area <= 0 || uvArea <= 0 || totalUV <= 0 || total <= 0 {
		return math.Inf(-1)
	}
	return math.Log2((uvArea / totalUV) / (area / total))
}

// UVLayoutOptions configures RenderUVLayout.
type UVLayoutOptions struct {
	Size          int     // Width and height of the image in pixels
	Margin        int     // Empty border around the layout in pixels
	EdgeWidth     float64 // Width of the drawn triangle edges in pixels; 0 skips edges
	DistortionMax float64 // Area distortion (log2) at which faces are fully tinted
}

// DefaultUVLayoutOptions returns UVLayoutOptions for a 1024 x 1024 image.
func DefaultUVLayoutOptions() *UVLayoutOptions {
	return &UVLayoutOptions{
		Size:          1024,
		Margin:        16,
		EdgeWidth:     1,
		DistortionMax: 2,
	}
}

// RenderUVLayout draws the mesh's UV triangles into a new image, uniformly scaled to fit. Faces are tinted by their
// area distortion: red where the parameterization grows them, blue where it shrinks them.
func RenderUVLayout(mesh *Mesh, options *UVLayoutOptions) (*image.NRGBA, error) {

	if options == nil {
		options = DefaultUVLayoutOptions()
	}

	if !mesh.HasUVs() {
		return nil, errors.Wrapf(ErrInvalidInput, "mesh %q has no UV coordinates", mesh.Name)
	}

	if options.Size <= 2*options.Margin {
		return nil, errors.Wrapf(ErrInvalidInput, "image size %d leaves no room inside a %d pixel margin", options.Size, options.Margin)
	}

	img := image.NewNRGBA(image.Rect(0, 0, options.Size, options.Size))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	minUV := NewVector2(math.Inf(1), math.Inf(1))
	maxUV := NewVector2(math.Inf(-1), math.Inf(-1))
	for _, v := range mesh.Vertices {
		if v.Halfedge == None {
			continue
		}
		minUV = NewVector2(math.Min(minUV.X, v.UV.X), math.Min(minUV.Y, v.UV.Y))
		maxUV = NewVector2(math.Max(maxUV.X, v.UV.X), math.Max(maxUV.Y, v.UV.Y))
	}

	span := math.Max(maxUV.X-minUV.X, maxUV.Y-minUV.Y)
	if span <= 0 || math.IsInf(span, 0) {
		span = 1
	}

	inner := float64(options.Size - 2*options.Margin)

	// V points up in UV space and down in image space.
	toPixel := func(uv Vector2) (float32, float32) {
		x := float64(options.Margin) + (uv.X-minUV.X)/span*inner
		y := float64(options.Size-options.Margin) - (uv.Y-minUV.Y)/span*inner
		return float32(x), float32(y)
	}

	raster := xvector.NewRasterizer(options.Size, options.Size)

	fill := func(c Color, points ...Vector2) {
		raster.Reset(options.Size, options.Size)
		raster.DrawOp = draw.Over
		for i, p := range points {
			x, y := toPixel(p)
			if i == 0 {
				raster.MoveTo(x, y)
			} else {
				raster.LineTo(x, y)
			}
		}
		raster.ClosePath()
		raster.Draw(img, img.Bounds(), image.NewUniform(c.ToNRGBA()), image.Point{})
	}

	totalUV := 0.0
	for f := range mesh.Faces {
		totalUV += math.Abs(mesh.UVArea(f))
	}
	total := mesh.TotalArea()

	for f := range mesh.Faces {
		tri := mesh.FaceVertices(f)
		c := DivergingColor(mesh.uvAreaDistortion(f, totalUV, total), options.DistortionMax)
		fill(c, mesh.Vertices[tri[0]].UV, mesh.Vertices[tri[1]].UV, mesh.Vertices[tri[2]].UV)
	}

	if options.EdgeWidth > 0 {

		// Half the edge width, in UV units.
		halfWidth := options.EdgeWidth / 2 * span / inner

		for _, e := range mesh.Edges {
			a := mesh.Vertices[mesh.Halfedges[e.Halfedge].Vertex].UV
			b := mesh.Vertices[mesh.Dest(e.Halfedge)].UV
			dir := b.Sub(a)
			length := dir.Magnitude()
			if length == 0 {
				continue
			}
			side := NewVector2(-dir.Y, dir.X).Scale(halfWidth / length)
			fill(colorEdge, a.Add(side), b.Add(side), b.Sub(side), a.Sub(side))
		}

	}

	return img, nil

}

// SaveUVLayoutPNG renders the mesh's UV layout and saves it as a PNG image at the given path.
func SaveUVLayoutPNG(path string, mesh *Mesh, options *UVLayoutOptions) error {

	img, err := RenderUVLayout(mesh, options)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}

	return file.Close()

}
