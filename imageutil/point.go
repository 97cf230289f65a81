package imageutil

// FlipAxis selects the mirror axis for Flip.
type FlipAxis int

const (
	// FlipHorizontal mirrors left to right.
	FlipHorizontal FlipAxis = iota
	// FlipVertical mirrors top to bottom.
	FlipVertical
)

func (a FlipAxis) String() string {
	switch a {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// mapPixels builds a new buffer by applying f to every pixel of img.
func mapPixels(img *Buffer, f func(RGB) RGB) *Buffer {
	dst := newBuffer(img.width, img.height)
	for i, p := range img.pix {
		dst.pix[i] = f(p)
	}
	return dst
}

// Brighten adds delta to every channel, clamping to [0, 255]. A negative
// delta darkens. Clamping is lossy, so Brighten followed by Darken only
// restores channels that were never clamped.
func Brighten(img *Buffer, delta int) *Buffer {
	shift := func(v uint8) uint8 {
		return uint8(clampInt(int(v)+delta, 0, 255))
	}
	return mapPixels(img, func(p RGB) RGB {
		return RGB{R: shift(p.R), G: shift(p.G), B: shift(p.B)}
	})
}

// Darken subtracts amount from every channel, clamping to [0, 255].
func Darken(img *Buffer, amount int) *Buffer {
	return Brighten(img, -amount)
}

// Flip mirrors img along axis.
func Flip(img *Buffer, axis FlipAxis) (*Buffer, error) {
	width, height := img.Width(), img.Height()
	dst := newBuffer(width, height)

	switch axis {
	case FlipHorizontal:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				dst.set(x, y, img.rgb(width-1-x, y))
			}
		}
	case FlipVertical:
		for y := 0; y < height; y++ {
			copy(dst.pix[y*width:(y+1)*width], img.pix[(height-1-y)*width:(height-y)*width])
		}
	default:
		return nil, InvalidArgumentError("flip", "unknown flip axis %d", int(axis))
	}
	return dst, nil
}
