package ddg

import "math"

// ToRadians is a helper function to easily convert degrees to radians.
func ToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float64) float64 {
	return radians / math.Pi * 180
}

func clamp[V float64 | float32 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// triangleArea returns the area of the triangle spanned by the three points.
func triangleArea(a, b, c Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Magnitude() * 0.5
}
