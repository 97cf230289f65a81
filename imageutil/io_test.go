package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.ppm", FormatPPM},
		{"dir/b.PNG", FormatPNG},
		{"c.jpg", FormatJPEG},
		{"c.JPEG", FormatJPEG},
		{"d.Bmp", FormatBMP},
	}
	for _, tc := range tests {
		got, err := FormatFromPath(tc.path)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.path, tc.want, got)
		}
	}

	for _, path := range []string{"e.gif", "noext", "f.ppm.txt"} {
		if _, err := FormatFromPath(path); err == nil {
			t.Errorf("%s: expected unsupported format error", path)
		}
	}
}

func TestLoadSaveLossless(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateColorBarsImage(64, 16)

	for _, name := range []string{"test.png", "test.bmp", "test.ppm", "TEST.PPM"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			if err := SaveImage(img, path, DefaultCodecOptions()); err != nil {
				t.Fatalf("Failed to save: %v", err)
			}
			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("Failed to load: %v", err)
			}
			if diff := cmp.Diff(img.Pixels(), loaded.Pixels()); diff != "" {
				t.Errorf("Lossless round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSavePlainPPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.ppm")
	img := CreateSolidImage(2, 1, RGB{1, 2, 3})
	if err := SaveImage(img, path, DefaultCodecOptions()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3") {
		t.Errorf("Expected plain PPM header P3, got %q", string(data[:min(len(data), 2)]))
	}

	opts := DefaultCodecOptions()
	opts.PlainPPM = false
	if err := SaveImage(img, path, opts); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.HasPrefix(string(data), "P6") {
		t.Errorf("Expected raw PPM header P6, got %q", string(data[:min(len(data), 2)]))
	}
}

func TestLoadPlainPPMText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.ppm")
	src := "P3\n# hand written\n2 2\n255\n255 0 0  0 255 0\n0 0 255  255 255 255\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	want := []RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255}}
	if diff := cmp.Diff(want, img.Pixels()); diff != "" {
		t.Errorf("PPM pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.jpg")
	img := CreateGradientImage(64, 64)
	if err := SaveImage(img, path, DefaultCodecOptions()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if mse := CalculateMSE(img, loaded); mse > 4.0 {
		t.Errorf("JPEG MSE too high: %f", mse)
	}
}

func TestLoadErrors(t *testing.T) {
	tmpDir := t.TempDir()

	garbage := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{
		filepath.Join(tmpDir, "missing.png"),
		filepath.Join(tmpDir, "unknown.gif"),
		garbage,
	} {
		if _, err := LoadImage(path); !errors.Is(err, ErrDecode) {
			t.Errorf("%s: expected decode error, got %v", filepath.Base(path), err)
		}
	}
}

func TestSaveErrors(t *testing.T) {
	img := CreateSolidImage(1, 1, RGB{})
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "out.gif")
	if err := SaveImage(img, path, DefaultCodecOptions()); !errors.Is(err, ErrEncode) {
		t.Errorf("Expected encode error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Unsupported extension should not create a file")
	}

	missingDir := filepath.Join(tmpDir, "no", "such", "dir.png")
	if err := SaveImage(img, missingDir, DefaultCodecOptions()); !errors.Is(err, ErrEncode) {
		t.Errorf("Expected encode error, got %v", err)
	}
}

func TestLoadTranslucentPNGKeepsColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpha.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := SaveImage(src, path, DefaultCodecOptions()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	want := []RGB{{200, 100, 50}, {10, 20, 30}}
	if diff := cmp.Diff(want, loaded.Pixels()); diff != "" {
		t.Errorf("Alpha should be dropped without scaling (-want +got):\n%s", diff)
	}
}

func TestFailedSaveKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.png")
	if err := SaveImage(CreateSolidImage(3, 2, RGB{7, 8, 9}), path, DefaultCodecOptions()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// png refuses to encode an empty image.
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if err := SaveImage(empty, path, DefaultCodecOptions()); !errors.Is(err, ErrEncode) {
		t.Fatalf("Expected encode error, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Failed save should leave the existing file unchanged")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only keep.png in the directory, got %d entries", len(entries))
	}
}
