package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
)

// Format is an image file format, chosen by file extension.
type Format int

const (
	FormatPPM Format = iota
	FormatPNG
	FormatJPEG
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatPPM:
		return "ppm"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

var errUnsupportedFormat = errors.New("unsupported image format")

// FormatFromPath maps a path's extension (case-insensitive) to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnsupportedFormat, filepath.Ext(path))
	}
}

// CodecOptions tunes encoding. The zero value is not useful; start from
// DefaultCodecOptions.
type CodecOptions struct {
	// JPEGQuality is the JPEG quality, 1-100.
	JPEGQuality int
	// PlainPPM writes ASCII (P3) instead of binary (P6) PPM.
	PlainPPM bool
}

// DefaultCodecOptions returns quality 95 JPEG and plain PPM.
func DefaultCodecOptions() CodecOptions {
	return CodecOptions{JPEGQuality: 95, PlainPPM: true}
}

// LoadImage loads an image from the specified path.
// Supports PPM, PNG, JPEG and BMP, chosen by extension.
func LoadImage(path string) (*Buffer, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &Error{Op: "load", Kind: KindDecode, Name: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "load", Kind: KindDecode, Name: path,
			Err: fmt.Errorf("failed to open image: %w", err)}
	}
	defer f.Close()

	img, err := Decode(f, format)
	if err != nil {
		return nil, &Error{Op: "load", Kind: KindDecode, Name: path,
			Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	buf, err := BufferFromImage(img)
	if err != nil {
		return nil, &Error{Op: "load", Kind: KindDecode, Name: path, Err: err}
	}
	return buf, nil
}

// Decode reads a single image in the given format.
func Decode(r io.Reader, format Format) (image.Image, error) {
	switch format {
	case FormatPPM:
		img, err := netpbm.Decode(r, nil)
		if err != nil {
			return nil, err
		}
		return img, nil
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	default:
		return nil, errUnsupportedFormat
	}
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts CodecOptions) error {
	switch format {
	case FormatPPM:
		return netpbm.Encode(w, img, &netpbm.EncodeOptions{
			Format:   netpbm.PPM,
			MaxValue: 255,
			Plain:    opts.PlainPPM,
		})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.JPEGQuality})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return errUnsupportedFormat
	}
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (ppm, png, jpg/jpeg, bmp).
// The extension is checked before anything is written. The image is
// encoded into a temporary file in the same directory and renamed over
// path, so a failed save leaves any existing file untouched.
func SaveImage(img image.Image, path string, opts CodecOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return &Error{Op: "save", Kind: KindEncode, Name: path, Err: err}
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return &Error{Op: "save", Kind: KindEncode, Name: path,
			Err: fmt.Errorf("failed to create file: %w", err)}
	}
	tmp := f.Name()

	if err := Encode(f, img, format, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return &Error{Op: "save", Kind: KindEncode, Name: path,
			Err: fmt.Errorf("failed to encode image: %w", err)}
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return &Error{Op: "save", Kind: KindEncode, Name: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &Error{Op: "save", Kind: KindEncode, Name: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &Error{Op: "save", Kind: KindEncode, Name: path,
			Err: fmt.Errorf("failed to replace file: %w", err)}
	}
	return nil
}
