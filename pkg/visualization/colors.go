package visualization

import "github.com/ladybug-tools/dragonfly-display/pkg/geometry"

// defaultGradient is the legend ramp from low (blue) to high (red).
var defaultGradient = []geometry.Color{
	geometry.RGB(75, 107, 169),
	geometry.RGB(115, 147, 202),
	geometry.RGB(170, 200, 247),
	geometry.RGB(193, 213, 208),
	geometry.RGB(245, 239, 103),
	geometry.RGB(252, 230, 74),
	geometry.RGB(239, 156, 21),
	geometry.RGB(234, 123, 0),
	geometry.RGB(234, 74, 0),
	geometry.RGB(234, 38, 0),
}

// Gradient returns the legend color at t in [0, 1]. Values outside the
// range are clamped.
func Gradient(t float64) geometry.Color {
	if t <= 0 {
		return defaultGradient[0]
	}
	if t >= 1 {
		return defaultGradient[len(defaultGradient)-1]
	}
	pos := t * float64(len(defaultGradient)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := defaultGradient[i], defaultGradient[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5) }
	return geometry.RGB(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B))
}

// CategoryColors spreads n colors evenly over the legend gradient.
func CategoryColors(n int) []geometry.Color {
	out := make([]geometry.Color, n)
	for i := range out {
		if n == 1 {
			out[i] = Gradient(0)
			continue
		}
		out[i] = Gradient(float64(i) / float64(n-1))
	}
	return out
}
