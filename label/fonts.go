package label

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSet holds the faces used for label text: the product name in a
// regular weight and the price in bold.
type FontSet struct {
	Name  font.Face
	Price font.Face
}

// LoadFonts builds the label font faces. Empty file paths fall back to the
// embedded Go fonts, so the binary works without any font assets installed.
func LoadFonts(nameFile, priceFile string, nameSize, priceSize float64) (FontSet, error) {
	name, err := loadFace(nameFile, goregular.TTF, nameSize)
	if err != nil {
		return FontSet{}, fmt.Errorf("load name font: %w", err)
	}
	price, err := loadFace(priceFile, gobold.TTF, priceSize)
	if err != nil {
		return FontSet{}, fmt.Errorf("load price font: %w", err)
	}
	return FontSet{Name: name, Price: price}, nil
}

func loadFace(path string, fallback []byte, size float64) (font.Face, error) {
	data := fallback
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font file %s: %w", path, err)
		}
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}
