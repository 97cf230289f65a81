package imageutil

import "math"

// Kernel represents a square, odd-sized convolution kernel. Weights are
// used as given; no normalization is applied.
type Kernel struct {
	values [][]float64
	size   int
}

var (
	// BlurKernel is the 3x3 Gaussian blur kernel. Its weights sum to 1.
	BlurKernel = mustKernel([][]float64{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	})

	// SharpenKernel is the 5x5 sharpening kernel: a negative outer ring,
	// a positive inner ring and a unit centre. Its weights sum to 1.
	SharpenKernel = mustKernel([][]float64{
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
	})
)

// NewKernel creates a kernel from a 2D slice. The slice is copied. It
// fails unless values is a non-empty square matrix with an odd side.
func NewKernel(values [][]float64) (*Kernel, error) {
	size := len(values)
	if size == 0 || size%2 == 0 {
		return nil, InvalidArgumentError("new kernel", "kernel size %d must be odd and positive", size)
	}
	k := &Kernel{values: make([][]float64, size), size: size}
	for i, row := range values {
		if len(row) != size {
			return nil, InvalidArgumentError("new kernel",
				"row %d has %d weights, want %d", i, len(row), size)
		}
		k.values[i] = append([]float64(nil), row...)
	}
	return k, nil
}

func mustKernel(values [][]float64) *Kernel {
	k, err := NewKernel(values)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel.
func (k *Kernel) Size() int {
	return k.size
}

// At returns the weight at row i, column j.
func (k *Kernel) At(i, j int) float64 {
	return k.values[i][j]
}

// Sum returns the sum of all weights.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, row := range k.values {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Convolve applies a convolution kernel to each channel independently.
// Source pixels outside the buffer contribute zero.
func Convolve(img *Buffer, kernel *Kernel) *Buffer {
	width, height := img.Width(), img.Height()
	dst := newBuffer(width, height)

	c := (kernel.size - 1) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumR, sumG, sumB float64

			for ky := 0; ky < kernel.size; ky++ {
				sy := y + ky - c
				if sy < 0 || sy >= height {
					continue
				}
				for kx := 0; kx < kernel.size; kx++ {
					sx := x + kx - c
					if sx < 0 || sx >= width {
						continue
					}

					p := img.rgb(sx, sy)
					k := kernel.values[ky][kx]

					sumR += float64(p.R) * k
					sumG += float64(p.G) * k
					sumB += float64(p.B) * k
				}
			}

			dst.set(x, y, RGB{
				R: clampUint8(sumR),
				G: clampUint8(sumG),
				B: clampUint8(sumB),
			})
		}
	}

	return dst
}

// Blur applies the 3x3 Gaussian blur.
func Blur(img *Buffer) *Buffer {
	return Convolve(img, BlurKernel)
}

// Sharpen applies the 5x5 sharpening filter.
func Sharpen(img *Buffer) *Buffer {
	return Convolve(img, SharpenKernel)
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUint8 rounds a float64 to the nearest integer (halves away from
// zero) and clamps it to [0, 255].
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
