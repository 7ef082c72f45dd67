// Package export runs the batch pipeline: render every item as a label and
// write the result as individual PNGs, a paginated PDF label sheet, or
// rasterized sheet pages.
package export

import (
	"errors"
	"fmt"
	"image"

	"github.com/labelforge/labelforge/batch"
	"github.com/labelforge/labelforge/label"
	"github.com/labelforge/labelforge/sheet"
)

// Format selects the batch output format.
type Format string

const (
	// FormatPNG writes one image file per item into a directory.
	FormatPNG Format = "png"
	// FormatPDF writes a single paginated PDF gridded per the sheet
	// layout.
	FormatPDF Format = "pdf"
	// FormatSheetPNG writes the gridded pages as PNG images.
	FormatSheetPNG Format = "sheet-png"
)

// ParseFormat parses a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatPDF, FormatSheetPNG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (supported: png, pdf, sheet-png)", s)
}

// Options configures a batch export.
type Options struct {
	Symbology label.Symbology
	Render    label.RenderOptions
	Layout    sheet.Layout
	Format    Format
	// Path is the output directory for FormatPNG and the output file for
	// the other formats.
	Path string
}

// Batch renders each item in order and writes the chosen output, returning
// the written file paths. A failure aborts the whole export; nothing is
// retried.
func Batch(items []batch.Item, opts Options) ([]string, error) {
	if len(items) == 0 {
		return nil, errors.New("batch is empty")
	}

	labels := make([]sheet.Label, 0, len(items))
	for _, item := range items {
		spec := label.Spec{
			Data:        item.Data,
			Symbology:   opts.Symbology,
			ProductName: item.Name,
			Price:       item.Price,
			IncludeLogo: opts.Render.LogoPath != "",
		}
		img, err := label.Render(spec, opts.Render)
		if err != nil {
			return nil, fmt.Errorf("render item %q: %w", item.Data, err)
		}
		labels = append(labels, sheet.Label{Data: item.Data, Name: item.Name, Image: img})
	}

	switch opts.Format {
	case FormatPNG:
		return sheet.WritePNGs(labels, opts.Path)
	case FormatPDF:
		if err := sheet.WritePDF(images(labels), opts.Layout, opts.Path); err != nil {
			return nil, err
		}
		return []string{opts.Path}, nil
	case FormatSheetPNG:
		return sheet.WriteSheetPNGs(images(labels), opts.Layout, opts.Path)
	}
	return nil, fmt.Errorf("unknown export format %q", opts.Format)
}

func images(labels []sheet.Label) []image.Image {
	imgs := make([]image.Image, len(labels))
	for i, l := range labels {
		imgs[i] = l.Image
	}
	return imgs
}
