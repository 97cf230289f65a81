package imageutil

// Component selects what GreyscaleComponent copies into all three channels.
type Component int

const (
	ComponentRed Component = iota
	ComponentGreen
	ComponentBlue
	// ComponentValue is max(R, G, B).
	ComponentValue
	// ComponentIntensity is the rounded mean of R, G and B.
	ComponentIntensity
	// ComponentLuma is the rounded Rec. 709 luma.
	ComponentLuma
)

func (c Component) String() string {
	switch c {
	case ComponentRed:
		return "red"
	case ComponentGreen:
		return "green"
	case ComponentBlue:
		return "blue"
	case ComponentValue:
		return "value"
	case ComponentIntensity:
		return "intensity"
	case ComponentLuma:
		return "luma"
	default:
		return "unknown"
	}
}

// Rec. 709 luma weights.
var lumaWeights = [3]float64{0.2126, 0.7152, 0.0722}

// ColorMatrix maps an (R, G, B) column vector to a new (R, G, B).
type ColorMatrix [3][3]float64

var (
	// GreyscaleMatrix produces luma in every channel.
	GreyscaleMatrix = ColorMatrix{lumaWeights, lumaWeights, lumaWeights}

	// SepiaMatrix is the standard sepia tone matrix.
	SepiaMatrix = ColorMatrix{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	}
)

// Apply multiplies the matrix by c, rounding and clamping each channel.
func (m ColorMatrix) Apply(c RGB) RGB {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return RGB{
		R: clampUint8(m[0][0]*r + m[0][1]*g + m[0][2]*b),
		G: clampUint8(m[1][0]*r + m[1][1]*g + m[1][2]*b),
		B: clampUint8(m[2][0]*r + m[2][1]*g + m[2][2]*b),
	}
}

// ApplyColorMatrix applies m to every pixel of img.
func ApplyColorMatrix(img *Buffer, m ColorMatrix) *Buffer {
	return mapPixels(img, m.Apply)
}

// Greyscale converts img to grey through GreyscaleMatrix.
func Greyscale(img *Buffer) *Buffer {
	return ApplyColorMatrix(img, GreyscaleMatrix)
}

// Sepia tones img through SepiaMatrix.
func Sepia(img *Buffer) *Buffer {
	return ApplyColorMatrix(img, SepiaMatrix)
}

// GreyscaleComponent replaces every channel with the selected component.
func GreyscaleComponent(img *Buffer, component Component) (*Buffer, error) {
	var pick func(RGB) uint8
	switch component {
	case ComponentRed:
		pick = func(p RGB) uint8 { return p.R }
	case ComponentGreen:
		pick = func(p RGB) uint8 { return p.G }
	case ComponentBlue:
		pick = func(p RGB) uint8 { return p.B }
	case ComponentValue:
		pick = func(p RGB) uint8 { return max(p.R, p.G, p.B) }
	case ComponentIntensity:
		pick = intensity
	case ComponentLuma:
		pick = luma
	default:
		return nil, InvalidArgumentError("greyscale component",
			"unknown component %d", int(component))
	}
	return mapPixels(img, func(p RGB) RGB {
		v := pick(p)
		return RGB{R: v, G: v, B: v}
	}), nil
}

// intensity returns round((R+G+B)/3). A sum divided by three never lands
// on a half, so integer arithmetic is exact.
func intensity(p RGB) uint8 {
	return uint8((int(p.R) + int(p.G) + int(p.B) + 1) / 3)
}

func luma(p RGB) uint8 {
	return clampUint8(lumaWeights[0]*float64(p.R) +
		lumaWeights[1]*float64(p.G) +
		lumaWeights[2]*float64(p.B))
}
