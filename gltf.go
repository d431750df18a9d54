package ddg

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type GLTFLoadOptions struct {
	// WeldVertices merges vertices sharing the exact same position. glTF exporters split vertices along UV seams and
	// hard edges, which would otherwise cut the surface into separate patches. Defaults to true.
	WeldVertices bool
	// KeepUVs stores the file's TEXCOORD_0 coordinates in Vertex.UV when every primitive of a mesh has them. Defaults to true.
	KeepUVs bool
	// ApplyTransforms bakes the world transform of the first node instancing a mesh into its vertex positions, so that
	// curvature and area are measured at the size the mesh is shown at. Defaults to true.
	ApplyTransforms bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		WeldVertices:    true,
		KeepUVs:         true,
		ApplyTransforms: true,
	}
}

// LoadGLTFFile loads a .gltf or .glb file from the filepath given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options.
// LoadGLTFFile will return a Library, and an error if the process fails.
func LoadGLTFFile(path string, loadOptions *GLTFLoadOptions) (*Library, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	lib, err := LoadGLTFData(fileData, loadOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	for _, name := range lib.Names() {
		lib.Meshes[name].Properties.Get("source").Set(path)
	}

	return lib, nil

}

// LoadGLTFData loads a .gltf or .glb file from the byte data given, using a provided GLTFLoadOptions struct to alter how the file is loaded.
// Passing nil for loadOptions will load the file using default load options. Every glTF mesh becomes one Mesh, with the
// triangles of all of its primitives merged; primitives that aren't triangle lists are skipped.
// LoadGLTFData will return a Library, and an error if the process fails.
func LoadGLTFData(data []byte, gltfLoadOptions *GLTFLoadOptions) (*Library, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	err := decoder.Decode(doc)

	if err != nil {
		return nil, err
	}

	if gltfLoadOptions == nil {
		gltfLoadOptions = DefaultGLTFLoadOptions()
	}

	library := NewLibrary()

	meshTransforms := map[int]Matrix4{}
	if gltfLoadOptions.ApplyTransforms {
		worldMatrices := nodeWorldMatrices(doc)
		for i, node := range doc.Nodes {
			if node.Mesh == nil {
				continue
			}
			if _, exists := meshTransforms[int(*node.Mesh)]; !exists {
				meshTransforms[int(*node.Mesh)] = worldMatrices[i]
			}
		}
	}

	for meshIndex, mesh := range doc.Meshes {

		name := mesh.Name
		if name == "" {
			name = "Mesh"
		}

		positions := []Vector{}
		uvs := []Vector2{}
		indices := []int{}
		hasUVs := true

		for primIndex, v := range mesh.Primitives {

			if v.Mode != gltf.PrimitiveTriangles {
				log.Printf("ddg: skipping primitive %d of mesh %q: mode %v isn't a triangle list", primIndex, name, v.Mode)
				continue
			}

			posAccessor, posExists := v.Attributes[gltf.POSITION]
			if !posExists {
				return nil, errors.Wrapf(ErrInvalidInput, "primitive %d of mesh %q has no positions", primIndex, name)
			}

			posBuffer := [][3]float32{}
			vertPos, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], posBuffer)

			if err != nil {
				return nil, err
			}

			offset := len(positions)

			for _, p := range vertPos {
				positions = append(positions, NewVector(float64(p[0]), float64(p[1]), float64(p[2])))
			}

			if texCoordAccessor, texCoordExists := v.Attributes[gltf.TEXCOORD_0]; texCoordExists && hasUVs {

				uvBuffer := [][2]float32{}
				texCoords, err := modeler.ReadTextureCoord(doc, doc.Accessors[texCoordAccessor], uvBuffer)

				if err != nil {
					return nil, err
				}

				for _, t := range texCoords {
					uvs = append(uvs, NewVector2(float64(t[0]), float64(t[1])))
				}

			} else {
				hasUVs = false
			}

			if v.Indices == nil {

				for i := range vertPos {
					indices = append(indices, offset+i)
				}

			} else {

				indexBuffer := []uint32{}
				primIndices, err := modeler.ReadIndices(doc, doc.Accessors[*v.Indices], indexBuffer)

				if err != nil {
					return nil, err
				}

				for _, j := range primIndices {
					indices = append(indices, offset+int(j))
				}

			}

		}

		if len(indices) == 0 {
			log.Printf("ddg: skipping mesh %d (%q): no triangles", meshIndex, name)
			continue
		}

		if !hasUVs || !gltfLoadOptions.KeepUVs {
			uvs = nil
		}

		if matrix, exists := meshTransforms[meshIndex]; exists && !matrix.IsIdentity() {
			positions, indices = TransformGeometry(matrix, positions, indices)
		}

		if gltfLoadOptions.WeldVertices {
			positions, uvs, indices = weldVertices(positions, uvs, indices)
		}

		newMesh, err := NewMesh(name, positions, indices)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %q", name)
		}

		for i, uv := range uvs {
			newMesh.Vertices[i].UV = uv
			newMesh.Vertices[i].HasUV = true
		}

		if dataMap, isMap := mesh.Extras.(map[string]interface{}); isMap {
			for tagName, data := range dataMap {
				newMesh.Properties.Get(tagName).Set(data)
			}
		}

		library.AddMesh(newMesh)

	}

	return library, nil

}

// nodeWorldMatrices returns the world transform of every node in the document, combining each node's local
// transform with those of its ancestors.
func nodeWorldMatrices(doc *gltf.Document) []Matrix4 {

	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = None
	}
	for i, node := range doc.Nodes {
		for _, child := range node.Children {
			if int(child) < len(parents) {
				parents[int(child)] = i
			}
		}
	}

	local := func(node *gltf.Node) Matrix4 {
		m := node.MatrixOrDefault()
		columns := [16]float64{}
		for i := range columns {
			columns[i] = float64(m[i])
		}
		// Nodes built in code leave the matrix zeroed rather than set to the identity.
		if matrix := NewMatrix4FromColumns(columns); !matrix.IsIdentity() && matrix != (Matrix4{}) {
			return matrix
		}
		t := node.Translation
		r := node.RotationOrDefault()
		s := node.ScaleOrDefault()
		return NewMatrix4TRS(
			NewVector(float64(t[0]), float64(t[1]), float64(t[2])),
			NewQuaternion(float64(r[0]), float64(r[1]), float64(r[2]), float64(r[3])),
			NewVector(float64(s[0]), float64(s[1]), float64(s[2])),
		)
	}

	world := make([]Matrix4, len(doc.Nodes))

	for i := range doc.Nodes {
		matrix := NewMatrix4()
		// Bounded; a broken file could link nodes into a cycle.
		for n, steps := i, 0; n != None && steps < len(doc.Nodes); n, steps = parents[n], steps+1 {
			matrix = matrix.Mult(local(doc.Nodes[n]))
		}
		world[i] = matrix
	}

	return world

}

// weldVertices merges vertices with identical positions, keeping the first one's UV, and remaps the indices onto the
// merged vertices. Vertices no triangle references are dropped.
func weldVertices(positions []Vector, uvs []Vector2, indices []int) ([]Vector, []Vector2, []int) {

	welded := map[Vector]int{}
	newPositions := []Vector{}
	newUVs := []Vector2{}
	newIndices := make([]int, len(indices))

	for i, index := range indices {

		if index < 0 || index >= len(positions) {
			// Left for NewMesh to report.
			newIndices[i] = index
			continue
		}

		p := positions[index]
		target, exists := welded[p]
		if !exists {
			target = len(newPositions)
			welded[p] = target
			newPositions = append(newPositions, p)
			if uvs != nil {
				newUVs = append(newUVs, uvs[index])
			}
		}
		newIndices[i] = target

	}

	if uvs == nil {
		newUVs = nil
	}

	return newPositions, newUVs, newIndices

}

// setAttribute sets a primitive attribute, creating the attribute map if needed.
func setAttribute[M ~map[string]V, V any](attributes *M, name string, accessor V) {
	if *attributes == nil {
		*attributes = M{}
	}
	(*attributes)[name] = accessor
}

// NewGLTFDocument creates a glTF document holding the mesh as a single triangle-list primitive, with positions, area-weighted
// vertex normals, UVs (if every vertex has one), and the mesh's properties as extras. One node in the default scene
// instances the mesh.
func NewGLTFDocument(mesh *Mesh) *gltf.Document {

	doc := gltf.NewDocument()

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	for i, n := range mesh.VertexNormals(AreaWeighted) {
		positions[i] = mesh.Vertices[i].Position.Float32s()
		normals[i] = n.Float32s()
	}

	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for f := range mesh.Faces {
		for _, v := range mesh.FaceVertices(f) {
			indices = append(indices, uint32(v))
		}
	}

	primitive := &gltf.Primitive{
		Mode:    gltf.PrimitiveTriangles,
		Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
	}

	setAttribute(&primitive.Attributes, gltf.POSITION, modeler.WritePosition(doc, positions))
	setAttribute(&primitive.Attributes, gltf.NORMAL, modeler.WriteNormal(doc, normals))

	if mesh.HasUVs() {
		uvs := make([][2]float32, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			uvs[i] = v.UV.Float32s()
		}
		setAttribute(&primitive.Attributes, gltf.TEXCOORD_0, modeler.WriteTextureCoord(doc, uvs))
	}

	gltfMesh := &gltf.Mesh{
		Name:       mesh.Name,
		Primitives: []*gltf.Primitive{primitive},
	}

	if names := mesh.Properties.Names(); len(names) > 0 {
		extras := map[string]interface{}{}
		for _, name := range names {
			extras[name] = mesh.Properties.Get(name).Value
		}
		gltfMesh.Extras = extras
	}

	doc.Meshes = append(doc.Meshes, gltfMesh)
	node := &gltf.Node{Name: mesh.Name, Mesh: gltf.Index(0)}
	node.Matrix[0], node.Matrix[5], node.Matrix[10], node.Matrix[15] = 1, 1, 1, 1
	node.Rotation[3] = 1
	node.Scale[0], node.Scale[1], node.Scale[2] = 1, 1, 1
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc

}

// SaveGLTFFile saves the mesh as a glTF file; paths ending in .glb are written in the binary format, others as JSON
// with the buffer embedded as a data URI.
func SaveGLTFFile(path string, mesh *Mesh) error {

	doc := NewGLTFDocument(mesh)

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltf.SaveBinary(doc, path)
	}

	for _, buffer := range doc.Buffers {
		if buffer.URI == "" {
			buffer.EmbeddedResource()
		}
	}

	return gltf.Save(doc, path)

}
