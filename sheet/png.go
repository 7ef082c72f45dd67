package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// sheetScale converts layout points to pixels when rasterizing whole pages
// (2x gives 144 dpi output).
const sheetScale = 2.0

// Label pairs a rendered image with the item fields used to name its
// output file.
type Label struct {
	Data  string
	Name  string
	Image image.Image
}

var fileNameSanitizer = strings.NewReplacer(" ", "_", "/", "-", "\\", "-")

// FileName builds the output file name for an individually exported label.
func FileName(name, data string) string {
	base := fileNameSanitizer.Replace(name)
	if base == "" {
		base = "label"
	}
	return fmt.Sprintf("%s_%s.png", base, fileNameSanitizer.Replace(data))
}

// WritePNGs writes one PNG per label into dir and returns the written
// paths.
func WritePNGs(labels []Label, dir string) ([]string, error) {
	if len(labels) == 0 {
		return nil, errors.New("no labels to export")
	}

	paths := make([]string, 0, len(labels))
	for _, l := range labels {
		path := filepath.Join(dir, FileName(l.Name, l.Data))
		if err := writePNG(l.Image, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteSheetPNGs rasterizes the gridded pages as PNG images. A single page
// is written to path as-is; multiple pages get a _pageN suffix before the
// extension.
func WriteSheetPNGs(images []image.Image, l Layout, path string) ([]string, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, errors.New("no labels to export")
	}

	perPage := l.PerPage()
	pages := l.PageCount(len(images))
	cw, ch := l.CellWidth()*sheetScale, l.CellHeight()*sheetScale

	paths := make([]string, 0, pages)
	for page := 0; page < pages; page++ {
		dc := gg.NewContext(int(l.PageW*sheetScale), int(l.PageH*sheetScale))
		dc.SetRGB(1, 1, 1)
		dc.Clear()

		start := page * perPage
		end := min(start+perPage, len(images))
		for i := start; i < end; i++ {
			cell := l.Cell(i)
			fitted := imaging.Fit(images[i], int(cw*cellFill), int(ch*cellFill), imaging.Lanczos)
			fb := fitted.Bounds()
			x := cell.X*sheetScale + (cw-float64(fb.Dx()))/2
			y := cell.Y*sheetScale + (ch-float64(fb.Dy()))/2
			dc.DrawImage(fitted, int(x), int(y))
		}

		out := pageFileName(path, page, pages)
		if err := writePNG(dc.Image(), out); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

func pageFileName(path string, page, total int) string {
	if total == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_page%d%s", strings.TrimSuffix(path, ext), page+1, ext)
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
