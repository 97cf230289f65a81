// Package imageutil provides the pixel buffer and the pure Go transforms
// (point operations, convolution, color matrices, flips and resampling)
// that imgedit applies to named images.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB, dropping alpha. The stored
// (non-premultiplied) channels are kept, so translucent pixels do not
// darken.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Buffer is an immutable row-major grid of RGB pixels. Transforms never
// modify a Buffer; they build a new one.
//
// Buffer implements image.Image so it can be passed directly to encoders
// and to golang.org/x/image/draw.
type Buffer struct {
	width, height int
	pix           []RGB
}

// NewBuffer creates a buffer from a row-major pixel slice. The slice is
// copied. It fails if either dimension is not positive or if len(pix)
// is not width*height.
func NewBuffer(width, height int, pix []RGB) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, InvalidArgumentError("new buffer", "invalid dimension %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, InvalidArgumentError("new buffer",
			"invalid dimension: %d pixels for %dx%d", len(pix), width, height)
	}
	b := newBuffer(width, height)
	copy(b.pix, pix)
	return b, nil
}

// newBuffer allocates a black buffer. Dimensions are trusted.
func newBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]RGB, width*height),
	}
}

// BufferFromImage converts any image.Image to a Buffer, dropping alpha.
// It fails if the image has an empty bounds rectangle.
func BufferFromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, InvalidArgumentError("convert image", "invalid dimension %dx%d",
			bounds.Dx(), bounds.Dy())
	}
	buf := newBuffer(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.set(x-bounds.Min.X, y-bounds.Min.Y, RGBFromColor(img.At(x, y)))
		}
	}
	return buf, nil
}

// Width returns the image width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the image height.
func (b *Buffer) Height() int {
	return b.height
}

// Pixel returns the pixel at (x, y).
func (b *Buffer) Pixel(x, y int) (RGB, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return RGB{}, &Error{
			Op:   "pixel",
			Kind: KindOutOfBounds,
			Err:  fmt.Errorf("(%d,%d) outside %dx%d", x, y, b.width, b.height),
		}
	}
	return b.rgb(x, y), nil
}

// Pixels returns a copy of the row-major pixel slice.
func (b *Buffer) Pixels() []RGB {
	return append([]RGB(nil), b.pix...)
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	clone := newBuffer(b.width, b.height)
	copy(clone.pix, b.pix)
	return clone
}

// Equal reports whether two buffers have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image. Points outside the buffer are transparent.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	return b.rgb(x, y).ToColor()
}

// ToRGBA copies the buffer into a new opaque *image.RGBA.
func (b *Buffer) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(b.Bounds())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			rgba.SetRGBA(x, y, b.rgb(x, y).ToColor())
		}
	}
	return rgba
}

// rgb returns the pixel at (x, y) without a bounds check.
func (b *Buffer) rgb(x, y int) RGB {
	return b.pix[y*b.width+x]
}

// set is only used while a transform is building its result.
func (b *Buffer) set(x, y int, c RGB) {
	b.pix[y*b.width+x] = c
}
