package imageutil

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBuffer(t *testing.T) {
	pix := []RGB{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}, {13, 14, 15}, {16, 17, 18}}
	img, err := NewBuffer(3, 2, pix)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	if img.Width() != 3 {
		t.Errorf("Expected width 3, got %d", img.Width())
	}
	if img.Height() != 2 {
		t.Errorf("Expected height 2, got %d", img.Height())
	}

	got, err := img.Pixel(2, 1)
	if err != nil {
		t.Fatalf("Pixel failed: %v", err)
	}
	if want := (RGB{16, 17, 18}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// The constructor copies its input.
	pix[0] = RGB{255, 255, 255}
	if p, _ := img.Pixel(0, 0); p != (RGB{1, 2, 3}) {
		t.Errorf("Buffer should not alias its input slice, got %v", p)
	}
}

func TestNewBufferInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pix           []RGB
	}{
		{"zero width", 0, 2, nil},
		{"negative height", 2, -1, nil},
		{"short pixels", 2, 2, make([]RGB, 3)},
		{"long pixels", 1, 1, make([]RGB, 2)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuffer(tc.width, tc.height, tc.pix)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected invalid argument, got %v", err)
			}
		})
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	img := CreateSolidImage(2, 3, RGB{1, 1, 1})
	for _, pt := range []image.Point{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		if _, err := img.Pixel(pt.X, pt.Y); KindOf(err) != KindOutOfBounds {
			t.Errorf("Pixel(%d,%d): expected out of bounds, got %v", pt.X, pt.Y, err)
		}
	}
}

func TestBufferClone(t *testing.T) {
	img := CreateNoiseImage(5, 4, 7)
	clone := img.Clone()
	if !clone.Equal(img) {
		t.Fatal("Clone should have same pixel values")
	}

	// Mutating the clone's backing array must not reach the original.
	clone.pix[0] = RGB{0, 255, 0}
	clone.pix[1] = RGB{255, 0, 255}
	if clone.Equal(img) {
		t.Error("Modifying clone should not affect original")
	}
}

func TestBufferImageInterface(t *testing.T) {
	img := CreateSolidImage(2, 2, RGB{10, 20, 30})
	var _ image.Image = img

	if got := img.At(1, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Expected opaque color, got %v", got)
	}
	if got := img.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("Expected transparent outside bounds, got %v", got)
	}

	back, err := BufferFromImage(img.ToRGBA())
	if err != nil {
		t.Fatalf("BufferFromImage failed: %v", err)
	}
	if diff := cmp.Diff(img.Pixels(), back.Pixels()); diff != "" {
		t.Errorf("RGBA round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferFromImageOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 12, 21))
	src.SetRGBA(11, 20, color.RGBA{R: 200, A: 255})

	img, err := BufferFromImage(src)
	if err != nil {
		t.Fatalf("BufferFromImage failed: %v", err)
	}
	if img.Width() != 2 || img.Height() != 1 {
		t.Fatalf("Expected 2x1, got %dx%d", img.Width(), img.Height())
	}
	if p, _ := img.Pixel(1, 0); p != (RGB{R: 200}) {
		t.Errorf("Expected red pixel at (1,0), got %v", p)
	}

	if _, err := BufferFromImage(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected invalid argument for empty image, got %v", err)
	}
}

func TestErrorMatching(t *testing.T) {
	err := NotFoundError("blur", "koala")
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("NotFoundError should not match ErrInvalidArgument")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("Expected kind %v, got %v", KindNotFound, KindOf(err))
	}
	want := `blur "koala" [not found]: image must be loaded first`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("Plain errors should have unknown kind")
	}
}
