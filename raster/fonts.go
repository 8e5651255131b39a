package raster

import (
	"fmt"
	"os"

	"file_tools/watermark"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
)

// FontSet maps generic families to parsed OpenType fonts.
type FontSet struct {
	fonts map[watermark.FontFamily]*opentype.Font
}

// The Go fonts ship no serif face, so serif falls back to Go Medium unless a
// TTF is configured for it.
var builtinFonts = map[watermark.FontFamily][]byte{
	watermark.SansSerif: gobold.TTF,
	watermark.Serif:     gomedium.TTF,
	watermark.Monospace: gomonobold.TTF,
}

// DefaultFontSet returns the embedded Go fonts.
func DefaultFontSet() *FontSet {
	fs, err := LoadFontSet(nil)
	if err != nil {
		panic(err) // embedded fonts always parse
	}
	return fs
}

// LoadFontSet parses the embedded fonts and replaces families listed in
// overrides with the TTF/OTF files they point to.
func LoadFontSet(overrides map[watermark.FontFamily]string) (*FontSet, error) {
	fs := &FontSet{fonts: make(map[watermark.FontFamily]*opentype.Font, len(builtinFonts))}
	for family, data := range builtinFonts {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin %s font: %w", family, err)
		}
		fs.fonts[family] = f
	}
	for family, path := range overrides {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s font: %w", family, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s font %s: %w", family, path, err)
		}
		fs.fonts[family] = f
	}
	return fs, nil
}

// Face returns a face of family at size pixels.
func (fs *FontSet) Face(family watermark.FontFamily, size float64) (font.Face, error) {
	f, ok := fs.fonts[family]
	if !ok {
		f = fs.fonts[watermark.SansSerif]
	}
	if f == nil {
		return nil, fmt.Errorf("no font loaded for %s", family)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
