// Package imgedit is a small raster image editor model. Images are loaded
// into a registry under a name, transformed from one name into another
// (possibly the same) name, and saved back to disk.
//
// Every transform reads its source buffer, builds a new buffer and only
// then registers it, so a failed operation never changes the registry.
package imgedit

import (
	"github.com/wbrown/imgedit/imageutil"
)

// Model owns a Registry and applies the editing operations to it.
type Model struct {
	registry    *Registry
	codec       imageutil.CodecOptions
	chartWidth  int
	chartHeight int
}

// Option configures a Model.
type Option func(*Model)

// WithRegistry makes the model operate on an existing registry.
func WithRegistry(r *Registry) Option {
	return func(m *Model) { m.registry = r }
}

// WithCodecOptions sets the options used by Save.
func WithCodecOptions(opts imageutil.CodecOptions) Option {
	return func(m *Model) { m.codec = opts }
}

// WithChartSize sets the size of histogram charts written by
// SaveHistogram.
func WithChartSize(width, height int) Option {
	return func(m *Model) { m.chartWidth, m.chartHeight = width, height }
}

// NewModel creates a Model with an empty registry unless WithRegistry is
// given.
func NewModel(opts ...Option) *Model {
	m := &Model{
		codec:       imageutil.DefaultCodecOptions(),
		chartWidth:  DefaultChartWidth,
		chartHeight: DefaultChartHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	return m
}

// Registry returns the registry the model operates on.
func (m *Model) Registry() *Registry {
	return m.registry
}

// source looks up name, reporting a missing image against op.
func (m *Model) source(op, name string) (*imageutil.Buffer, error) {
	img, err := m.registry.Get(name)
	if err != nil {
		return nil, imageutil.NotFoundError(op, name)
	}
	return img, nil
}

// apply runs f on the image named src and registers the result as dst.
func (m *Model) apply(op, src, dst string, f func(*imageutil.Buffer) (*imageutil.Buffer, error)) error {
	img, err := m.source(op, src)
	if err != nil {
		return err
	}
	out, err := f(img)
	if err != nil {
		return err
	}
	Logger().Debug("applied", "op", op, "src", src, "dst", dst)
	return m.registry.Put(dst, out)
}

// pure adapts an infallible transform for apply.
func pure(f func(*imageutil.Buffer) *imageutil.Buffer) func(*imageutil.Buffer) (*imageutil.Buffer, error) {
	return func(img *imageutil.Buffer) (*imageutil.Buffer, error) {
		return f(img), nil
	}
}

// Load decodes the file at path and registers it as name.
func (m *Model) Load(path, name string) error {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return err
	}
	Logger().Info("loaded image", "path", path, "name", name,
		"width", img.Width(), "height", img.Height())
	return m.registry.Put(name, img)
}

// Save encodes the image registered as name to path. The format follows
// the file extension.
func (m *Model) Save(path, name string) error {
	img, err := m.source("save", name)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(img, path, m.codec); err != nil {
		return err
	}
	Logger().Info("saved image", "path", path, "name", name)
	return nil
}

// Image returns the image registered as name.
func (m *Model) Image(name string) (*imageutil.Buffer, error) {
	return m.source("get image", name)
}

// Names returns the registered image names in registration order.
func (m *Model) Names() []string {
	return m.registry.Names()
}

// Brighten adds amount to every channel of src and stores the result as
// dst. A negative amount darkens.
func (m *Model) Brighten(amount int, src, dst string) error {
	return m.apply("brighten", src, dst, pure(func(img *imageutil.Buffer) *imageutil.Buffer {
		return imageutil.Brighten(img, amount)
	}))
}

// Darken subtracts amount from every channel of src and stores the result
// as dst.
func (m *Model) Darken(amount int, src, dst string) error {
	return m.apply("darken", src, dst, pure(func(img *imageutil.Buffer) *imageutil.Buffer {
		return imageutil.Darken(img, amount)
	}))
}

// Flip mirrors src along axis into dst.
func (m *Model) Flip(axis imageutil.FlipAxis, src, dst string) error {
	return m.apply("flip", src, dst, func(img *imageutil.Buffer) (*imageutil.Buffer, error) {
		return imageutil.Flip(img, axis)
	})
}

// GreyscaleComponent copies the selected component of src into all three
// channels of dst.
func (m *Model) GreyscaleComponent(component imageutil.Component, src, dst string) error {
	return m.apply("greyscale component", src, dst, func(img *imageutil.Buffer) (*imageutil.Buffer, error) {
		return imageutil.GreyscaleComponent(img, component)
	})
}

// Blur applies the Gaussian blur kernel to src and stores the result as dst.
func (m *Model) Blur(src, dst string) error {
	return m.apply("blur", src, dst, pure(imageutil.Blur))
}

// Sharpen applies the sharpening kernel to src and stores the result as dst.
func (m *Model) Sharpen(src, dst string) error {
	return m.apply("sharpen", src, dst, pure(imageutil.Sharpen))
}

// Greyscale converts src to grey with the luma color matrix.
func (m *Model) Greyscale(src, dst string) error {
	return m.apply("greyscale", src, dst, pure(imageutil.Greyscale))
}

// Sepia tones src with the sepia color matrix.
func (m *Model) Sepia(src, dst string) error {
	return m.apply("sepia", src, dst, pure(imageutil.Sepia))
}

// Downsize shrinks src to the given percentages of its width and height.
func (m *Model) Downsize(widthPercent, heightPercent int, src, dst string) error {
	return m.apply("downsize", src, dst, func(img *imageutil.Buffer) (*imageutil.Buffer, error) {
		return imageutil.Downsize(img, widthPercent, heightPercent)
	})
}

// Histogram computes the channel histogram of the image registered as name.
func (m *Model) Histogram(name string) (imageutil.Histogram, error) {
	img, err := m.source("histogram", name)
	if err != nil {
		return imageutil.Histogram{}, err
	}
	return imageutil.ComputeHistogram(img), nil
}

// SaveHistogram renders the histogram of name as a chart and writes it to
// path.
func (m *Model) SaveHistogram(path, name string) error {
	h, err := m.Histogram(name)
	if err != nil {
		return err
	}
	chart, err := RenderHistogram(&h, m.chartWidth, m.chartHeight)
	if err != nil {
		return err
	}
	if err := imageutil.SaveImage(chart, path, m.codec); err != nil {
		return err
	}
	Logger().Info("saved histogram", "path", path, "name", name)
	return nil
}
