package label

import (
	"errors"
	"testing"
)

func TestParseSymbology(t *testing.T) {
	tests := []struct {
		in   string
		want Symbology
	}{
		{"qr", SymbologyQR},
		{"QR Code", SymbologyQR},
		{"code128", SymbologyCode128},
		{"Code 128", SymbologyCode128},
		{"code-39", SymbologyCode39},
		{"ean-13", SymbologyEAN13},
		{"EAN13", SymbologyEAN13},
		{"ean8", SymbologyEAN8},
	}

	for _, tt := range tests {
		got, err := ParseSymbology(tt.in)
		if err != nil {
			t.Errorf("ParseSymbology(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSymbology(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSymbologyUnknown(t *testing.T) {
	_, err := ParseSymbology("aztec")
	if err == nil {
		t.Fatal("expected error for unknown symbology")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *ValidationError", err)
	}
}
