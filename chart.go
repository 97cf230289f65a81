package imgedit

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/imgedit/imageutil"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"
)

const (
	// DefaultChartWidth and DefaultChartHeight size histogram charts.
	DefaultChartWidth  = 512
	DefaultChartHeight = 256

	// MinChartSize is the smallest width or height RenderHistogram accepts.
	MinChartSize = 64

	// The chart is drawn at this multiple of its final size and scaled down.
	chartSupersample = 2
	chartFontSize    = 10
)

// Series colors: red, green, blue, intensity. Translucent so overlaps show.
var chartSeriesColors = [4]color.NRGBA{
	{R: 220, A: 110},
	{G: 180, A: 110},
	{B: 220, A: 110},
	{R: 40, G: 40, B: 40, A: 90},
}

var (
	chartFontOnce sync.Once
	chartFont     *truetype.Font
	chartFontErr  error
)

// loadChartFont parses the embedded Go regular font once.
func loadChartFont() (*truetype.Font, error) {
	chartFontOnce.Do(func() {
		chartFont, chartFontErr = freetype.ParseFont(goregular.TTF)
	})
	return chartFont, chartFontErr
}

// RenderHistogram draws h as a chart of width x height pixels: one
// translucent filled series per channel on a white background, with the
// value axis labelled 0 and 255 and the peak count in the top left.
func RenderHistogram(h *imageutil.Histogram, width, height int) (*imageutil.Buffer, error) {
	if width < MinChartSize || height < MinChartSize {
		return nil, imageutil.InvalidArgumentError("render histogram",
			"chart size %dx%d below %d", width, height, MinChartSize)
	}
	ttf, err := loadChartFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}

	s := chartSupersample
	w, ht := width*s, height*s
	canvas := image.NewRGBA(image.Rect(0, 0, w, ht))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	// Plot area in canvas coordinates.
	plot := image.Rect(28*s, 14*s, w-6*s, ht-16*s)

	peak := h.Max()
	if peak > 0 {
		for i, bins := range h.Channels() {
			fillSeries(canvas, plot, bins, peak, chartSeriesColors[i])
		}
	}

	// Axes.
	axis := image.NewUniform(color.Black)
	draw.Draw(canvas, image.Rect(plot.Min.X-s, plot.Min.Y, plot.Min.X, plot.Max.Y+s), axis, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(plot.Min.X-s, plot.Max.Y, plot.Max.X, plot.Max.Y+s), axis, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(float64(chartFontSize * s))
	ctx.SetClip(canvas.Bounds())
	ctx.SetDst(canvas)
	ctx.SetSrc(image.Black)
	ctx.SetHinting(font.HintingNone)

	baseline := plot.Max.Y + (chartFontSize+3)*s
	labels := []struct {
		text string
		pt   image.Point
	}{
		{"0", image.Pt(plot.Min.X, baseline)},
		{"255", image.Pt(plot.Max.X-3*chartFontSize/2*s, baseline)},
		{strconv.Itoa(peak), image.Pt(2*s, plot.Min.Y+chartFontSize*s/2)},
	}
	for _, l := range labels {
		if _, err := ctx.DrawString(l.text, freetype.Pt(l.pt.X, l.pt.Y)); err != nil {
			return nil, fmt.Errorf("failed to draw chart label %q: %w", l.text, err)
		}
	}

	return imageutil.Resize(canvas, width, height)
}

// fillSeries fills the area under one channel's counts inside plot.
func fillSeries(dst draw.Image, plot image.Rectangle, bins *[256]int, peak int, c color.NRGBA) {
	r := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	r.DrawOp = draw.Over

	left, bottom := float32(plot.Min.X), float32(plot.Max.Y)
	dx := float32(plot.Dx()) / 256
	scale := float32(plot.Dy()) / float32(peak)

	r.MoveTo(left, bottom)
	for i, n := range bins {
		y := bottom - float32(n)*scale
		r.LineTo(left+float32(i)*dx, y)
		r.LineTo(left+float32(i+1)*dx, y)
	}
	r.LineTo(left+256*dx, bottom)
	r.ClosePath()

	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
