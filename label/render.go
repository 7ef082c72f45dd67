package label

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	// labelPadding separates the stacked label components and forms the
	// white border around the finished label.
	labelPadding = 15.0
	// logoHeight is the height the logo thumbnail is resized to.
	logoHeight = 60
)

// Spec describes a single label to render. It is constructed per render
// request and never mutated.
type Spec struct {
	Data        string
	Symbology   Symbology
	ProductName string
	Price       string
	IncludeLogo bool
}

// RenderOptions carries the settings shared by every render call: barcode
// dimensions, the currency symbol prepended to prices, the logo file, and
// the text faces.
type RenderOptions struct {
	Encode   EncodeOptions
	Currency string
	LogoPath string
	Fonts    FontSet
}

// FormatPrice prepends the currency symbol unless the price already starts
// with it. Empty prices pass through untouched.
func FormatPrice(price, currency string) string {
	if price == "" || currency == "" || strings.HasPrefix(price, currency) {
		return price
	}
	return currency + price
}

// Render produces the composed label image: optional logo on top, the
// encoded barcode, then the product name and price centered underneath on a
// white background.
func Render(spec Spec, opts RenderOptions) (image.Image, error) {
	code, err := Encode(spec.Data, spec.Symbology, opts.Encode)
	if err != nil {
		return nil, err
	}

	name := spec.ProductName
	price := FormatPrice(spec.Price, opts.Currency)
	if (name != "" || price != "") && (opts.Fonts.Name == nil || opts.Fonts.Price == nil) {
		return nil, errors.New("render label: font faces not loaded")
	}

	var logo image.Image
	if spec.IncludeLogo && opts.LogoPath != "" {
		src, err := imaging.Open(opts.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("open logo %s: %w", opts.LogoPath, err)
		}
		logo = imaging.Resize(src, 0, logoHeight, imaging.Lanczos)
	}

	mc := gg.NewContext(1, 1)
	var nameW, nameH, priceW, priceH float64
	if name != "" {
		mc.SetFontFace(opts.Fonts.Name)
		nameW, nameH = mc.MeasureString(name)
	}
	if price != "" {
		mc.SetFontFace(opts.Fonts.Price)
		priceW, priceH = mc.MeasureString(price)
	}

	cb := code.Bounds()
	codeW, codeH := float64(cb.Dx()), float64(cb.Dy())
	var logoW float64
	if logo != nil {
		logoW = float64(logo.Bounds().Dx())
	}

	extra := 0.0
	if logo != nil {
		extra += logoHeight + labelPadding
	}
	if name != "" {
		extra += nameH + labelPadding
	}
	if price != "" {
		extra += priceH + labelPadding
	}
	if logo == nil && name == "" && price == "" {
		extra = labelPadding
	}

	width := int(math.Max(math.Max(codeW, logoW), math.Max(nameW, priceW)) + 2*labelPadding)
	height := int(codeH + extra + labelPadding)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := labelPadding
	if logo != nil {
		dc.DrawImage(logo, (width-logo.Bounds().Dx())/2, int(y))
		y += logoHeight + labelPadding
	}

	dc.DrawImage(code, (width-cb.Dx())/2, int(y))
	y += codeH + labelPadding

	dc.SetRGB(0, 0, 0)
	if name != "" {
		dc.SetFontFace(opts.Fonts.Name)
		dc.DrawStringAnchored(name, float64(width)/2, y, 0.5, 1)
		y += nameH + labelPadding/2
	}
	if price != "" {
		dc.SetFontFace(opts.Fonts.Price)
		dc.DrawStringAnchored(price, float64(width)/2, y, 0.5, 1)
	}

	return dc.Image(), nil
}
