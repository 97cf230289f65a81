package imageutil

import "math"

// CreateGradientImage creates a horizontal grey gradient test image.
func CreateGradientImage(width, height int) *Buffer {
	img := newBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			img.set(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *Buffer {
	img := newBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.set(x, y, RGB{R: 255, G: 255, B: 255})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *Buffer {
	img := newBuffer(width, height)
	for i := range img.pix {
		img.pix[i] = c
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *Buffer {
	img := newBuffer(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.set(x, y, colors[colorIdx])
		}
	}
	return img
}

// CreateEdgeImage creates a grey image with a white centre rectangle and
// a black diagonal, useful for exercising filters near sharp edges.
func CreateEdgeImage(width, height int) *Buffer {
	img := CreateSolidImage(width, height, RGB{R: 128, G: 128, B: 128})

	rx1, ry1 := width/4, height/4
	rx2, ry2 := 3*width/4, 3*height/4
	for y := ry1; y < ry2; y++ {
		for x := rx1; x < rx2; x++ {
			img.set(x, y, RGB{R: 255, G: 255, B: 255})
		}
	}

	for i := 0; i < min(width, height)/2; i++ {
		img.set(i, i, RGB{})
	}

	return img
}

// CreateNoiseImage creates a deterministic pseudo-random color image.
func CreateNoiseImage(width, height int, seed uint32) *Buffer {
	img := newBuffer(width, height)
	state := seed | 1
	next := func() uint8 {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return uint8(state)
	}
	for i := range img.pix {
		img.pix[i] = RGB{R: next(), G: next(), B: next()}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two images.
func CalculateMSE(img1, img2 *Buffer) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	var sumSq float64
	count := float64(len(img1.pix) * 3) // 3 channels

	for i, c1 := range img1.pix {
		c2 := img2.pix[i]
		dr := float64(c1.R) - float64(c2.R)
		dg := float64(c1.G) - float64(c2.G)
		db := float64(c1.B) - float64(c2.B)
		sumSq += dr*dr + dg*dg + db*db
	}

	return sumSq / count
}

// CalculateMaxDiff calculates the maximum channel difference between two
// images, or 256 if their sizes differ.
func CalculateMaxDiff(img1, img2 *Buffer) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for i, c1 := range img1.pix {
		c2 := img2.pix[i]
		maxDiff = max(maxDiff,
			abs(int(c1.R)-int(c2.R)),
			abs(int(c1.G)-int(c2.G)),
			abs(int(c1.B)-int(c2.B)))
	}

	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
