package ddg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Library represents a collection of Meshes, as loaded from a mesh file (.obj, .gltf or .glb).
type Library struct {
	Meshes map[string]*Mesh // A Map of Meshes to their names
	order  []string
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Meshes: map[string]*Mesh{},
	}
}

// AddMesh adds a Mesh to the Library. A Mesh whose name is already taken gets a numbered suffix (".001", ".002", ...).
func (lib *Library) AddMesh(mesh *Mesh) {
	name := mesh.Name
	for i := 1; lib.Meshes[name] != nil; i++ {
		name = fmt.Sprintf("%s.%03d", mesh.Name, i)
	}
	mesh.Name = name
	lib.Meshes[name] = mesh
	lib.order = append(lib.order, name)
}

// FindMesh returns the Mesh with the given name, or nil if the Library has none by that name.
func (lib *Library) FindMesh(name string) *Mesh {
	return lib.Meshes[name]
}

// First returns the first Mesh added to the Library, or nil if it's empty.
func (lib *Library) First() *Mesh {
	if len(lib.order) == 0 {
		return nil
	}
	return lib.Meshes[lib.order[0]]
}

// Names returns the names of the Library's Meshes in the order they were added.
func (lib *Library) Names() []string {
	return append([]string{}, lib.order...)
}

// LoadMeshFile loads the first Mesh in the .obj, .gltf or .glb file at the given path, choosing the format by file extension.
// The mesh name given selects a specific mesh from a glTF file instead; it's ignored for .obj files.
func LoadMeshFile(path string, meshName string) (*Mesh, error) {

	switch strings.ToLower(filepath.Ext(path)) {

	case ".obj":
		return LoadOBJFile(path)

	case ".gltf", ".glb":
		lib, err := LoadGLTFFile(path, nil)
		if err != nil {
			return nil, err
		}
		mesh := lib.First()
		if meshName != "" {
			mesh = lib.FindMesh(meshName)
		}
		if mesh == nil {
			return nil, errors.Wrapf(ErrEmptyMesh, "no mesh named %q in %s", meshName, path)
		}
		return mesh, nil

	}

	return nil, errors.Wrapf(ErrUnknownFormat, "can't load %s", path)

}

// SaveMeshFile saves the mesh to the given path as a .obj, .gltf or .glb file, choosing the format by file extension.
func SaveMeshFile(path string, mesh *Mesh) error {

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return SaveOBJFile(path, mesh)
	case ".gltf", ".glb":
		return SaveGLTFFile(path, mesh)
	}

	return errors.Wrapf(ErrUnknownFormat, "can't save %s", path)

}
