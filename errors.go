package ddg

import "github.com/pkg/errors"

// ErrInvalidInput is the root of every error caused by a mesh or request the library can't work with.
// Test for it with errors.Is; the more specific errors below all wrap it.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyMesh           = errors.Wrap(ErrInvalidInput, "mesh has no triangles")
	ErrIndexOutOfRange     = errors.Wrap(ErrInvalidInput, "vertex index out of range")
	ErrDegenerateTriangle  = errors.Wrap(ErrInvalidInput, "degenerate triangle")
	ErrInconsistentWinding = errors.Wrap(ErrInvalidInput, "directed edge used twice (inconsistent winding or non-manifold edge)")
	ErrNonManifold         = errors.Wrap(ErrInvalidInput, "non-manifold vertex")
	ErrNoBoundary          = errors.Wrap(ErrInvalidInput, "mesh has no boundary loop")
	ErrUnknownFormat       = errors.Wrap(ErrInvalidInput, "unknown mesh file format")
)
