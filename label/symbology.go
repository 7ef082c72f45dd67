// Package label renders product labels: a barcode or QR code with an
// optional product name, price, and company logo composed onto a single
// image.
package label

import (
	"fmt"
	"strings"
)

// Symbology identifies a barcode encoding standard.
type Symbology string

const (
	SymbologyQR      Symbology = "qr"
	SymbologyCode128 Symbology = "code128"
	SymbologyCode39  Symbology = "code39"
	SymbologyEAN8    Symbology = "ean8"
	SymbologyEAN13   Symbology = "ean13"
)

// Supported returns the symbologies this package can encode.
func Supported() []Symbology {
	return []Symbology{
		SymbologyQR,
		SymbologyCode128,
		SymbologyCode39,
		SymbologyEAN8,
		SymbologyEAN13,
	}
}

// Display returns a human-readable name for the symbology.
func (s Symbology) Display() string {
	switch s {
	case SymbologyQR:
		return "QR Code"
	case SymbologyCode128:
		return "Code 128"
	case SymbologyCode39:
		return "Code 39"
	case SymbologyEAN8:
		return "EAN-8"
	case SymbologyEAN13:
		return "EAN-13"
	}
	return string(s)
}

// ParseSymbology parses a user-supplied symbology name. Matching is
// case-insensitive and accepts common aliases ("qr code", "ean-13", ...).
func ParseSymbology(s string) (Symbology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qr", "qrcode", "qr code", "qr-code":
		return SymbologyQR, nil
	case "code128", "code-128", "code 128", "128":
		return SymbologyCode128, nil
	case "code39", "code-39", "code 39", "39":
		return SymbologyCode39, nil
	case "ean8", "ean-8", "ean 8":
		return SymbologyEAN8, nil
	case "ean13", "ean-13", "ean 13", "ean":
		return SymbologyEAN13, nil
	}

	names := make([]string, 0, len(Supported()))
	for _, sym := range Supported() {
		names = append(names, string(sym))
	}
	return "", &ValidationError{
		Field:  "symbology",
		Reason: fmt.Sprintf("unknown symbology %q (supported: %s)", s, strings.Join(names, ", ")),
	}
}
