package pdf

import (
	"bytes"
	"fmt"
	"image"

	"file_tools/raster"
	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// coreFonts maps the generic families to the standard PDF fonts, which need
// no embedding.
var coreFonts = map[watermark.FontFamily]string{
	watermark.SansSerif: "Helvetica",
	watermark.Serif:     "Times",
	watermark.Monospace: "Courier",
}

// document is an fpdf output document. Watermark images added through any of
// its pages are embedded once.
type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images map[image.Image]string
	seq    int
}

func newDocument(unit string) *document {
	pdf := fpdf.New("P", unit, "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[image.Image]string),
	}
}

// addPage starts a w x h page and returns its canvas.
func (d *document) addPage(w, h float64) *fpdfCanvas {
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
	return &fpdfCanvas{doc: d, w: w, h: h}
}

// embed registers img under a generated name. Opaque page renders go in as
// JPEG at quality, everything else as PNG.
func (d *document) embed(img image.Image, format imaging.Format, quality int) (string, error) {
	// fpdf reads 8-bit PNGs only
	data, err := raster.Encode(imaging.Clone(img), format, quality)
	if err != nil {
		return "", err
	}
	d.seq++
	name := fmt.Sprintf("img%d", d.seq)
	tp := "PNG"
	if format == imaging.JPEG {
		tp = "JPG"
	}
	d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: tp}, bytes.NewReader(data))
	if d.pdf.Err() {
		return "", d.pdf.Error()
	}
	return name, nil
}

func (d *document) bytes(op string) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return buf.Bytes(), nil
}

// fpdfCanvas draws on the current page of a document. It takes PDF user
// space coordinates and converts them to fpdf's top-left origin.
type fpdfCanvas struct {
	doc  *document
	w, h float64
}

func (c *fpdfCanvas) Size() watermark.Dims {
	return watermark.Dims{Width: c.w, Height: c.h}
}

func (c *fpdfCanvas) TextWidth(text string, family watermark.FontFamily, size float64) float64 {
	c.setFont(family, size)
	return c.doc.pdf.GetStringWidth(c.doc.tr(text))
}

func (c *fpdfCanvas) AddImage(img image.Image) (string, error) {
	if name, ok := c.doc.images[img]; ok {
		return name, nil
	}
	name, err := c.doc.embed(img, imaging.PNG, 0)
	if err != nil {
		return "", err
	}
	c.doc.images[img] = name
	return name, nil
}

func (c *fpdfCanvas) DrawText(it pageItem, text string, family watermark.FontFamily, size float64, col watermark.RGB) error {
	pdf := c.doc.pdf
	text = c.doc.tr(text)
	c.setFont(family, size)
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
	pdf.SetAlpha(it.Opacity, "Normal")

	cx, cy := it.Center.X, c.h-it.Center.Y
	pdf.TransformBegin()
	pdf.TransformRotate(it.Angle, cx, cy)
	// baseline sits a third of the size below the center
	pdf.Text(cx-pdf.GetStringWidth(text)/2, cy+size/3, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
	return pdf.Error()
}

func (c *fpdfCanvas) DrawImage(it pageItem, name string) error {
	pdf := c.doc.pdf
	cx, cy := it.Center.X, c.h-it.Center.Y
	pdf.SetAlpha(it.Opacity, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(it.Angle, cx, cy)
	pdf.ImageOptions(name, cx-it.Width/2, cy-it.Height/2, it.Width, it.Height, false,
		fpdf.ImageOptions{AllowNegativePosition: true}, 0, "")
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	return pdf.Error()
}

// placeImage draws an embedded image with its top left corner at x, y in
// fpdf coordinates.
func (c *fpdfCanvas) placeImage(name string, x, y, w, h float64) {
	c.doc.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

func (c *fpdfCanvas) setFont(family watermark.FontFamily, size float64) {
	name, ok := coreFonts[family]
	if !ok {
		name = coreFonts[watermark.SansSerif]
	}
	c.doc.pdf.SetFont(name, "B", size)
}
