package ddg

import (
	"image/color"
	"math"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// Lerp returns the color linearly interpolated between this one (t = 0) and the other one (t = 1).
func (c Color) Lerp(other Color, t float32) Color {
	t = clamp(t, 0, 1)
	return Color{
		c.R + (other.R-c.R)*t,
		c.G + (other.G-c.G)*t,
		c.B + (other.B-c.B)*t,
		c.A + (other.A-c.A)*t,
	}
}

// ToNRGBA converts the Color for use with the image packages.
func (c Color) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// ConvertTosRGB converts a linear color to sRGB.
func (c Color) ConvertTosRGB() Color {
	convert := func(v float32) float32 {
		if v <= 0.0031308 {
			return v * 12.92
		}
		return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
	}
	return Color{convert(c.R), convert(c.G), convert(c.B), c.A}
}

var (
	colorCold    = NewColor(0.15, 0.35, 0.95, 1)
	colorNeutral = NewColor(0.92, 0.92, 0.92, 1)
	colorHot     = NewColor(0.9, 0.2, 0.15, 1)
	colorEdge    = NewColor(0.1, 0.1, 0.1, 1)
)

// DivergingColor maps value onto a blue-white-red ramp: -limit and below is blue, 0 is white, and limit and above is red.
func DivergingColor(value, limit float64) Color {
	if limit <= 0 || math.IsNaN(value) {
		return colorNeutral
	}
	t := float32(value / limit)
	if t < 0 {
		return colorNeutral.Lerp(colorCold, -t)
	}
	return colorNeutral.Lerp(colorHot, t)
}
