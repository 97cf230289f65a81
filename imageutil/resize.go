package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsize shrinks img to the given percentages of its width and height
// using nearest-neighbor sampling with floor index mapping. Both percents
// must lie in (0, 100] and neither resulting dimension may be zero.
func Downsize(img *Buffer, widthPercent, heightPercent int) (*Buffer, error) {
	if widthPercent <= 0 || widthPercent > 100 {
		return nil, InvalidArgumentError("downsize", "width percent %d not in (0,100]", widthPercent)
	}
	if heightPercent <= 0 || heightPercent > 100 {
		return nil, InvalidArgumentError("downsize", "height percent %d not in (0,100]", heightPercent)
	}

	width, height := img.Width(), img.Height()
	newWidth := width * widthPercent / 100
	newHeight := height * heightPercent / 100
	if newWidth == 0 || newHeight == 0 {
		return nil, InvalidArgumentError("downsize",
			"%dx%d at %d%%x%d%% has a zero dimension", width, height, widthPercent, heightPercent)
	}

	dst := newBuffer(newWidth, newHeight)
	for y := 0; y < newHeight; y++ {
		sy := y * height / newHeight
		for x := 0; x < newWidth; x++ {
			dst.set(x, y, img.rgb(x*width/newWidth, sy))
		}
	}
	return dst, nil
}

// Resize resamples img to width x height with Catmull-Rom interpolation.
// It is used for rendered output such as charts, not for Downsize.
func Resize(img image.Image, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, InvalidArgumentError("resize", "invalid dimension %dx%d", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return BufferFromImage(dst)
}
