package sheet

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"Blue T-Shirt", "ITEM-001", "Blue_T-Shirt_ITEM-001.png"},
		{"a/b", "X1", "a-b_X1.png"},
		{"", "X1", "label_X1.png"},
	}
	for _, tt := range tests {
		if got := FileName(tt.name, tt.data); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.name, tt.data, got, tt.want)
		}
	}
}

func TestWritePNGs(t *testing.T) {
	dir := t.TempDir()

	labels := []Label{
		{Data: "ITEM-001", Name: "Widget 1", Image: testImage(200, 100)},
		{Data: "ITEM-002", Name: "Widget 2", Image: testImage(200, 100)},
		{Data: "ITEM-003", Name: "Widget 3", Image: testImage(200, 100)},
	}

	paths, err := WritePNGs(labels, dir)
	if err != nil {
		t.Fatalf("WritePNGs failed: %v", err)
	}
	if len(paths) != len(labels) {
		t.Fatalf("wrote %d files, want %d", len(paths), len(labels))
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("%s is not a decodable PNG: %v", p, err)
			continue
		}
		if img.Bounds().Dx() == 0 {
			t.Errorf("%s decoded to an empty image", p)
		}
	}
}

func TestWritePNGsEmpty(t *testing.T) {
	if _, err := WritePNGs(nil, t.TempDir()); err == nil {
		t.Error("expected error for empty label list")
	}
}

func TestWriteSheetPNGs(t *testing.T) {
	dir := t.TempDir()
	l := LetterGrid()

	// 35 labels span two pages.
	images := make([]image.Image, 35)
	for i := range images {
		images[i] = testImage(200, 100)
	}

	base := filepath.Join(dir, "labels.png")
	paths, err := WriteSheetPNGs(images, l, base)
	if err != nil {
		t.Fatalf("WriteSheetPNGs failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d pages, want 2", len(paths))
	}

	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a decodable PNG: %v", p, err)
		}
		if img.Bounds().Dx() != int(l.PageW*sheetScale) {
			t.Errorf("%s width = %d, want %d", p, img.Bounds().Dx(), int(l.PageW*sheetScale))
		}
	}
}

func TestWriteSheetPNGsSinglePage(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "labels.png")

	paths, err := WriteSheetPNGs([]image.Image{testImage(200, 100)}, LetterGrid(), base)
	if err != nil {
		t.Fatalf("WriteSheetPNGs failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != base {
		t.Errorf("paths = %v, want [%s]", paths, base)
	}
}
