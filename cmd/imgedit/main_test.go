package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wbrown/imgedit"
	"github.com/wbrown/imgedit/imageutil"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	img := imageutil.CreateGradientImage(32, 16)
	if err := imageutil.SaveImage(img, path, imageutil.DefaultCodecOptions()); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplInteractive(t *testing.T) {
	path := writeTestImage(t)
	in := strings.NewReader(strings.Join([]string{
		"load " + path + " a",
		"nonsense a b",
		"blur a b",
		"list",
		"info b",
		"quit",
		"darken 10 a c",
	}, "\n"))

	var out bytes.Buffer
	model := imgedit.NewModel()
	if err := repl(model, in, &out, true); err != nil {
		t.Fatalf("repl failed: %v", err)
	}

	text := out.String()
	if !strings.HasPrefix(text, "> ") {
		t.Error("Interactive mode should prompt")
	}
	if !strings.Contains(text, "Error:") {
		t.Error("Interactive mode should report the bad command and continue")
	}
	if !strings.Contains(text, "b: 32x16") {
		t.Errorf("Expected info output, got:\n%s", text)
	}
	if _, err := model.Image("c"); !errors.Is(err, imageutil.ErrNotFound) {
		t.Error("Commands after quit should not run")
	}
}

func TestReplNonInteractiveStopsOnError(t *testing.T) {
	in := strings.NewReader("# comment\n\nsepia missing out\nblur a b\n")
	var out bytes.Buffer
	err := repl(imgedit.NewModel(), in, &out, false)
	if !errors.Is(err, imageutil.ErrNotFound) {
		t.Fatalf("Expected not found, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 3:") {
		t.Errorf("Expected failure on line 3, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Non-interactive mode should not prompt, got %q", out.String())
	}
}

func TestPrintHistogram(t *testing.T) {
	h := imageutil.ComputeHistogram(imageutil.CreateSolidImage(4, 4, imageutil.RGB{R: 255, G: 255, B: 255}))
	var out bytes.Buffer
	printHistogram(&out, &h, 40)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != histogramRows {
		t.Fatalf("Expected %d rows, got %d", histogramRows, len(lines))
	}
	if strings.Contains(lines[0], "#") {
		t.Errorf("Dark bucket should be empty, got %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "240-255 |") || strings.Count(last, "#") != 28 {
		t.Errorf("Expected a full bar in the bright bucket, got %q", last)
	}
}

func TestListCommand(t *testing.T) {
	model := imgedit.NewModel()
	for name, img := range map[string]*imageutil.Buffer{
		"wide": imageutil.CreateSolidImage(6, 2, imageutil.RGB{}),
		"tall": imageutil.CreateSolidImage(1, 5, imageutil.RGB{}),
	} {
		if err := model.Registry().Put(name, img); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	if err := execLine(model, &out, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{"wide", "6x2", "tall", "1x5"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in list output, got:\n%s", want, text)
		}
	}
	if n := strings.Count(text, "\n"); n != 2 {
		t.Errorf("Expected 2 lines, got %d", n)
	}
}
