package sheet

import (
	"errors"
	"fmt"
	"image"

	"github.com/signintech/gopdf"
)

// cellFill is the fraction of a cell a label may occupy, leaving a gap
// between neighbouring labels.
const cellFill = 0.9

// WritePDF writes the labels as a paginated PDF at path, gridding them per
// the layout. Each label is aspect-fit into its cell and centered.
func WritePDF(images []image.Image, l Layout, path string) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(images) == 0 {
		return errors.New("no labels to export")
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: l.PageW, H: l.PageH}})

	perPage := l.PerPage()
	cw, ch := l.CellWidth(), l.CellHeight()

	for i, img := range images {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		cell := l.Cell(i)
		w, h := fit(img.Bounds(), cw*cellFill, ch*cellFill)
		x := cell.X + (cw-w)/2
		y := cell.Y + (ch-h)/2
		if err := pdf.ImageFrom(img, x, y, &gopdf.Rect{W: w, H: h}); err != nil {
			return fmt.Errorf("place label %d: %w", i, err)
		}
	}

	if err := pdf.WritePdf(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// fit scales an image's bounds to the largest size that fits within
// maxW x maxH while preserving aspect ratio.
func fit(b image.Rectangle, maxW, maxH float64) (w, h float64) {
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	if ih/iw > maxH/maxW {
		return maxH * iw / ih, maxH
	}
	return maxW, maxW * ih / iw
}
