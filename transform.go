package ddg

import (
	"math"
	"strconv"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 is row-major and transforms row
// vectors (i.e. the X axis is matrix[0], and the translation is matrix[3]).
type Matrix4 [4][4]float64

var identityMatrix = NewMatrix4()

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix4FromColumns returns a Matrix4 from 16 floats stored column by column, as glTF node matrices are.
func NewMatrix4FromColumns(floats [16]float64) Matrix4 {
	mat := Matrix4{}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			mat[row][col] = floats[row*4+col]
		}
	}
	return mat
}

// NewMatrix4Translate returns a new identity Matrix4, but with the x, y, and z translation components set as provided.
func NewMatrix4Translate(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a new identity Matrix4, but with the scale components set as provided. 1, 1, 1 is the default.
func NewMatrix4Scale(x, y, z float64) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a new Matrix4 designed to rotate by the angle given (in radians) along the axis given [x, y, z].
// This rotation works as though you pierced the object utilizing the matrix through by the axis, and then rotated it
// counter-clockwise by the angle in radians.
func NewMatrix4Rotate(x, y, z, angle float64) Matrix4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	vector := NewVector(x, y, z).Unit()
	s := math.Sin(angle)
	c := math.Cos(angle)
	m := 1 - c

	mat[0][0] = m*vector.X*vector.X + c
	mat[0][1] = m*vector.X*vector.Y + vector.Z*s
	mat[0][2] = m*vector.Z*vector.X - vector.Y*s

	mat[1][0] = m*vector.X*vector.Y - vector.Z*s
	mat[1][1] = m*vector.Y*vector.Y + c
	mat[1][2] = m*vector.Y*vector.Z + vector.X*s

	mat[2][0] = m*vector.Z*vector.X + vector.Y*s
	mat[2][1] = m*vector.Y*vector.Z - vector.X*s
	mat[2][2] = m*vector.Z*vector.Z + c

	return mat

}

// NewMatrix4TRS returns the Matrix4 that scales, then rotates, then translates, as glTF nodes without a matrix do.
func NewMatrix4TRS(translation Vector, rotation Quaternion, scale Vector) Matrix4 {
	return NewMatrix4Scale(scale.X, scale.Y, scale.Z).
		Mult(rotation.ToMatrix4()).
		Mult(NewMatrix4Translate(translation.X, translation.Y, translation.Z))
}

// MultVec multiplies the vector provided by the Matrix4, giving a vector that has been rotated, scaled, or translated as desired.
func (matrix Matrix4) MultVec(vect Vector) Vector {

	return Vector{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// Mult multiplies a Matrix4 by another provided Matrix4 - this effectively combines them, applying this one first.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	newMat := Matrix4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			for k := 0; k < 4; k++ {
				newMat[row][col] += matrix[row][k] * other[k][col]
			}
		}
	}

	return newMat

}

// Determinant returns the determinant of the Matrix4's upper 3x3 (rotation and scale) part. It's negative when the
// Matrix4 mirrors space, which turns triangle windings inside out.
func (matrix Matrix4) Determinant() float64 {
	return matrix[0][0]*(matrix[1][1]*matrix[2][2]-matrix[1][2]*matrix[2][1]) -
		matrix[0][1]*(matrix[1][0]*matrix[2][2]-matrix[1][2]*matrix[2][0]) +
		matrix[0][2]*(matrix[1][0]*matrix[2][1]-matrix[1][1]*matrix[2][0])
}

// Equals returns true if the matrix equals the same values in the provided Other Matrix4.
func (matrix Matrix4) Equals(other Matrix4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(matrix[i][j]-other[i][j]) > 1e-9 {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the matrix is an unmodified identity matrix.
func (matrix Matrix4) IsIdentity() bool {
	return matrix.Equals(identityMatrix)
}

func (matrix Matrix4) String() string {
	s := "{"
	for i, y := range matrix {
		for _, x := range y {
			s += strconv.FormatFloat(x, 'f', -1, 64) + ", "
		}
		if i < len(matrix)-1 {
			s += "\n"
		}
	}
	s += "}"
	return s
}

// Quaternion represents a rotation, stored as glTF stores node rotations (X, Y, Z, and then the scalar W).
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion returns a new Quaternion with the given components.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// ToMatrix4 returns the rotation Matrix4 of the Quaternion, normalizing it first. A zero Quaternion gives the identity.
func (quat Quaternion) ToMatrix4() Matrix4 {

	length := math.Sqrt(quat.Dot(quat))
	if length == 0 {
		return NewMatrix4()
	}

	x, y, z, w := quat.X/length, quat.Y/length, quat.Z/length, quat.W/length

	mat := NewMatrix4()

	mat[0][0] = 1 - 2*(y*y+z*z)
	mat[0][1] = 2 * (x*y + z*w)
	mat[0][2] = 2 * (x*z - y*w)

	mat[1][0] = 2 * (x*y - z*w)
	mat[1][1] = 1 - 2*(x*x+z*z)
	mat[1][2] = 2 * (y*z + x*w)

	mat[2][0] = 2 * (x*z + y*w)
	mat[2][1] = 2 * (y*z - x*w)
	mat[2][2] = 1 - 2*(x*x+y*y)

	return mat

}

// TransformGeometry applies the matrix to every position, returning new slices. If the matrix mirrors space, every
// triangle's winding is reversed so the faces keep pointing outward.
func TransformGeometry(matrix Matrix4, positions []Vector, indices []int) ([]Vector, []int) {

	newPositions := make([]Vector, len(positions))
	for i, p := range positions {
		newPositions[i] = matrix.MultVec(p)
	}

	newIndices := append([]int{}, indices...)
	if matrix.Determinant() < 0 {
		for i := 0; i+2 < len(newIndices); i += 3 {
			newIndices[i+1], newIndices[i+2] = newIndices[i+2], newIndices[i+1]
		}
	}

	return newPositions, newIndices

}
