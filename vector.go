package ddg

import (
	"math"
	"strconv"
)

// Vector represents a 3D position or direction. Vectors are values; every function that "modifies" a Vector returns a modified copy,
// so method-chaining (`a.Sub(b).Cross(c).Unit()`) never touches the originals.
type Vector struct {
	X float64 // The X (1st) component of the Vector
	Y float64 // The Y (2nd) component of the Vector
	Z float64 // The Z (3rd) component of the Vector
}

// NewVector creates a new Vector with the specified x, y, and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorZero creates a new "zero-ed out" Vector.
func NewVectorZero() Vector {
	return Vector{}
}

// Add returns a copy of the calling vector, added together with the other Vector provided.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector, with the other Vector subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and the provided Other Vector.
func (vec Vector) Cross(other Vector) Vector {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector pointing the other way.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// MagnitudeSquared returns the squared length of the Vector; this is faster than Magnitude() as it avoids using math.Sqrt().
func (vec Vector) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

func (vec Vector) Distance(other Vector) float64 {
	return vec.Sub(other).Magnitude()
}

// Unit returns a copy of the Vector, normalized (set to be of unit length).
// A Vector too short to normalize is returned as the zero Vector.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < 1e-12 {
		return Vector{}
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Scale scales a Vector by the given scalar.
func (vec Vector) Scale(scalar float64) Vector {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Divide divides a Vector by the given scalar.
func (vec Vector) Divide(scalar float64) Vector {
	vec.X /= scalar
	vec.Y /= scalar
	vec.Z /= scalar
	return vec
}

// Dot returns the dot product of a Vector and another Vector.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Angle returns the angle between the calling Vector and the provided other Vector, in radians.
// The cosine is clamped to [-1, 1] so round-off never produces NaN.
func (vec Vector) Angle(other Vector) float64 {
	return math.Acos(clamp(vec.Unit().Dot(other.Unit()), -1, 1))
}

// Get returns the component at the given axis index (0 = X, 1 = Y, 2 = Z).
func (vec Vector) Get(axis int) float64 {
	switch axis {
	case 0:
		return vec.X
	case 1:
		return vec.Y
	}
	return vec.Z
}

// SetAxis returns a copy of the Vector with the component at the given axis index set to value.
func (vec Vector) SetAxis(axis int, value float64) Vector {
	switch axis {
	case 0:
		vec.X = value
	case 1:
		vec.Y = value
	default:
		vec.Z = value
	}
	return vec
}

// Floats returns a [3]float64 array consisting of the Vector's contents.
func (vec Vector) Floats() [3]float64 {
	return [3]float64{vec.X, vec.Y, vec.Z}
}

// Float32s returns the Vector's contents narrowed to float32, as glTF buffers store them.
func (vec Vector) Float32s() [3]float32 {
	return [3]float32{float32(vec.X), float32(vec.Y), float32(vec.Z)}
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector) Equals(other Vector) bool {

	eps := 1e-8

	if math.Abs(vec.X-other.X) > eps || math.Abs(vec.Y-other.Y) > eps || math.Abs(vec.Z-other.Z) > eps {
		return false
	}

	return true

}

// IsZero returns true if the values in the Vector are extremely close to 0.
func (vec Vector) IsZero() bool {
	return vec.Equals(Vector{})
}

func (vec Vector) String() string {
	return "{" + strconv.FormatFloat(vec.X, 'f', -1, 64) + ", " + strconv.FormatFloat(vec.Y, 'f', -1, 64) + ", " + strconv.FormatFloat(vec.Z, 'f', -1, 64) + "}"
}

// Vector2 represents a 2D texture-space (UV) coordinate.
type Vector2 struct {
	X float64 // U
	Y float64 // V
}

// NewVector2 creates a new Vector2 with the given u and v components.
func NewVector2(u, v float64) Vector2 {
	return Vector2{X: u, Y: v}
}

func (vec Vector2) Add(other Vector2) Vector2 {
	vec.X += other.X
	vec.Y += other.Y
	return vec
}

func (vec Vector2) Sub(other Vector2) Vector2 {
	vec.X -= other.X
	vec.Y -= other.Y
	return vec
}

func (vec Vector2) Scale(scalar float64) Vector2 {
	vec.X *= scalar
	vec.Y *= scalar
	return vec
}

// Cross returns the Z component of the 3D cross product of the two Vector2s; it is twice the signed area of the triangle they span.
func (vec Vector2) Cross(other Vector2) float64 {
	return vec.X*other.Y - vec.Y*other.X
}

// Magnitude returns the length of the Vector2.
func (vec Vector2) Magnitude() float64 {
	return math.Hypot(vec.X, vec.Y)
}

// Equals returns true if the two Vector2s are close enough in both values.
func (vec Vector2) Equals(other Vector2) bool {
	eps := 1e-8
	return math.Abs(vec.X-other.X) <= eps && math.Abs(vec.Y-other.Y) <= eps
}

// Float32s returns the Vector2's contents narrowed to float32.
func (vec Vector2) Float32s() [2]float32 {
	return [2]float32{float32(vec.X), float32(vec.Y)}
}
