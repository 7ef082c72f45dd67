package label

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/skip2/go-qrcode"
)

// EncodeOptions controls the pixel dimensions of the raw barcode image.
type EncodeOptions struct {
	BarcodeWidth  int
	BarcodeHeight int
	QRSize        int
}

// DefaultEncodeOptions returns the dimensions used when nothing is
// configured.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		BarcodeWidth:  280,
		BarcodeHeight: 120,
		QRSize:        256,
	}
}

// Encode turns data into a raw barcode image for the given symbology,
// without any text or logo. Bad input is reported as a *ValidationError;
// encoding is pure and synchronous.
func Encode(data string, sym Symbology, opts EncodeOptions) (image.Image, error) {
	if data == "" {
		return nil, &ValidationError{Field: "data", Reason: "must not be empty"}
	}

	if sym == SymbologyQR {
		code, err := qrcode.New(data, qrcode.Medium)
		if err != nil {
			return nil, &ValidationError{Field: "data", Reason: "cannot be encoded as a QR code", Err: err}
		}
		return code.Image(opts.QRSize), nil
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch sym {
	case SymbologyCode128:
		bc, err = code128.Encode(data)
	case SymbologyCode39:
		bc, err = code39.Encode(data, false, true)
	case SymbologyEAN8:
		if n := len(data); n != 7 && n != 8 {
			return nil, &ValidationError{Field: "data", Reason: "EAN-8 requires 7 or 8 digits"}
		}
		bc, err = ean.Encode(data)
	case SymbologyEAN13:
		if n := len(data); n != 12 && n != 13 {
			return nil, &ValidationError{Field: "data", Reason: "EAN-13 requires 12 or 13 digits"}
		}
		bc, err = ean.Encode(data)
	default:
		return nil, &ValidationError{Field: "symbology", Reason: fmt.Sprintf("unsupported symbology %q", sym)}
	}
	if err != nil {
		return nil, &ValidationError{
			Field:  "data",
			Reason: fmt.Sprintf("not valid %s data", sym.Display()),
			Err:    err,
		}
	}

	scaled, err := barcode.Scale(bc, opts.BarcodeWidth, opts.BarcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("scale %s barcode to %dx%d: %w", sym, opts.BarcodeWidth, opts.BarcodeHeight, err)
	}
	return scaled, nil
}
