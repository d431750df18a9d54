package ddg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadOBJFile loads a Wavefront .obj file from the filepath given, returning a Mesh named after the file.
func LoadOBJFile(path string) (*Mesh, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh, err := LoadOBJData(file, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	mesh.Properties.Get("source").Set(path)
	return mesh, nil

}

type objImporter struct {
	positions []Vector
	uvs       []Vector2
	indices   []int
	uvIndices []int // Parallel to indices; -1 where a face vertex has no texture coordinate
}

// LoadOBJData reads Wavefront .obj data and builds a Mesh from its vertex positions ("v") and faces ("f").
// Face indices may be 1-based or negative (relative); polygons with more than three vertices are split into a fan of
// triangles. Texture coordinates ("vt") are kept as vertex UVs if every face vertex references one; normals are ignored.
func LoadOBJData(r io.Reader, name string) (*Mesh, error) {

	importer := &objImporter{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		if err := importer.readLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	mesh, err := NewMesh(name, importer.positions, importer.indices)
	if err != nil {
		return nil, err
	}

	importer.applyUVs(mesh)

	return mesh, nil

}

func (importer *objImporter) readLine(line string) error {

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {

	case "v":
		if len(fields) < 4 {
			return errors.Wrapf(ErrInvalidInput, "vertex needs 3 coordinates, found %d", len(fields)-1)
		}
		var coords [3]float64
		for i := range coords {
			f, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return errors.Wrap(ErrInvalidInput, err.Error())
			}
			coords[i] = f
		}
		importer.positions = append(importer.positions, NewVector(coords[0], coords[1], coords[2]))

	case "vt":
		if len(fields) < 3 {
			return errors.Wrapf(ErrInvalidInput, "texture coordinate needs 2 values, found %d", len(fields)-1)
		}
		u, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return errors.Wrap(ErrInvalidInput, err.Error())
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return errors.Wrap(ErrInvalidInput, err.Error())
		}
		importer.uvs = append(importer.uvs, NewVector2(u, v))

	case "f":
		if len(fields) < 4 {
			return errors.Wrapf(ErrInvalidInput, "face needs at least 3 vertices, found %d", len(fields)-1)
		}
		verts := make([]int, 0, len(fields)-1)
		uvs := make([]int, 0, len(fields)-1)
		for _, field := range fields[1:] {
			v, uv, err := importer.readFaceVertex(field)
			if err != nil {
				return err
			}
			verts = append(verts, v)
			uvs = append(uvs, uv)
		}
		for j := 1; j < len(verts)-1; j++ {
			importer.indices = append(importer.indices, verts[0], verts[j], verts[j+1])
			importer.uvIndices = append(importer.uvIndices, uvs[0], uvs[j], uvs[j+1])
		}

	}

	return nil

}

// readFaceVertex parses one "v", "v/vt", "v//vn" or "v/vt/vn" reference into 0-based vertex and texture coordinate
// indices; the texture index is -1 if absent.
func (importer *objImporter) readFaceVertex(field string) (int, int, error) {

	parts := strings.Split(field, "/")

	v, err := objIndex(parts[0], len(importer.positions))
	if err != nil {
		return 0, 0, err
	}

	uv := -1
	if len(parts) > 1 && parts[1] != "" {
		if uv, err = objIndex(parts[1], len(importer.uvs)); err != nil {
			return 0, 0, err
		}
	}

	return v, uv, nil

}

// objIndex converts a 1-based or negative OBJ index into a 0-based one. Range checks are left to NewMesh.
func objIndex(field string, count int) (int, error) {
	i, err := strconv.Atoi(field)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidInput, err.Error())
	}
	if i > 0 {
		return i - 1, nil
	} else if i < 0 {
		return count + i, nil
	}
	return 0, errors.Wrap(ErrIndexOutOfRange, "OBJ indices start at 1, found 0")
}

func (importer *objImporter) applyUVs(mesh *Mesh) {

	if len(importer.uvs) == 0 {
		return
	}

	for _, uv := range importer.uvIndices {
		if uv < 0 || uv >= len(importer.uvs) {
			return
		}
	}

	for i, v := range importer.indices {
		mesh.Vertices[v].UV = importer.uvs[importer.uvIndices[i]]
		mesh.Vertices[v].HasUV = true
	}

}

// WriteOBJ writes the mesh as Wavefront .obj data. If every vertex has a UV coordinate, one "vt" line is written per
// vertex and faces reference it alongside the position.
func WriteOBJ(w io.Writer, mesh *Mesh) error {

	bw := bufio.NewWriter(w)
	withUVs := mesh.HasUVs()

	fmt.Fprintf(bw, "# %s: %d vertices, %d triangles\n", mesh.Name, len(mesh.Vertices), len(mesh.Faces))
	if mesh.Name != "" {
		fmt.Fprintf(bw, "o %s\n", mesh.Name)
	}

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.Position.X), formatFloat(v.Position.Y), formatFloat(v.Position.Z))
	}

	if withUVs {
		for _, v := range mesh.Vertices {
			fmt.Fprintf(bw, "vt %s %s\n", formatFloat(v.UV.X), formatFloat(v.UV.Y))
		}
	}

	for f := range mesh.Faces {
		tri := mesh.FaceVertices(f)
		if withUVs {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", tri[0]+1, tri[0]+1, tri[1]+1, tri[1]+1, tri[2]+1, tri[2]+1)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", tri[0]+1, tri[1]+1, tri[2]+1)
		}
	}

	return bw.Flush()

}

// SaveOBJFile writes the mesh to the given path as a Wavefront .obj file.
func SaveOBJFile(path string, mesh *Mesh) error {

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteOBJ(file, mesh); err != nil {
		file.Close()
		return err
	}

	return file.Close()

}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
