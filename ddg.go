// Package ddg is a discrete differential geometry toolkit for triangle meshes.
//
// A Mesh is built from a flat position list and a triangle index buffer (NewMesh), and stores its connectivity as
// index-based halfedges, so any vertex's one-ring or any face's corners can be walked in constant time per element.
// On top of that sit the discrete operators (normals, cotangent weights, mixed Voronoi areas, mean and Gaussian
// curvature), sparse Laplacian and mass matrix assembly, and two consumers: implicit Laplacian smoothing (Smoother) and
// Tutte-style parameterization onto a disk or square (Parameterizer). Meshes load from and save to Wavefront OBJ and
// glTF files.
package ddg
