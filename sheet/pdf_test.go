package sheet

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	// 35 labels: one full page plus 5 on a second page.
	images := make([]image.Image, 35)
	for i := range images {
		images[i] = testImage(200, 100)
	}

	if err := WritePDF(images, LetterGrid(), path); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("pdf file is empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("file does not start with %%PDF header")
	}

	// The /Pages root object also matches "/Type /Page", so subtract it
	// to count actual page objects.
	pages := bytes.Count(data, []byte("/Type /Page")) - bytes.Count(data, []byte("/Type /Pages"))
	if want := LetterGrid().PageCount(len(images)); pages != want {
		t.Errorf("pdf has %d pages, want %d", pages, want)
	}
}

func TestWritePDFEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := WritePDF(nil, LetterGrid(), path); err == nil {
		t.Error("expected error for empty label list")
	}
}

func TestWritePDFBadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	bad := Layout{Rows: 0, Cols: 0}
	if err := WritePDF([]image.Image{testImage(10, 10)}, bad, path); err == nil {
		t.Error("expected error for invalid layout")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h         int
		maxW, maxH   float64
		wantW, wantH float64
	}{
		{200, 100, 100, 100, 100, 50}, // wide image limited by width
		{100, 200, 100, 100, 50, 100}, // tall image limited by height
		{100, 100, 50, 50, 50, 50},    // square
	}
	for _, tt := range tests {
		w, h := fit(image.Rect(0, 0, tt.w, tt.h), tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%dx%d, %g, %g) = %g x %g, want %g x %g",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}
