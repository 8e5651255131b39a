package pdf

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"math"

	"file_tools/raster"
	"file_tools/toolerr"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// Document is a loaded PDF that can be rasterized page by page.
type Document interface {
	NumPages() int
	// RenderPage renders the zero based page at scale times its point size.
	RenderPage(index int, scale float64) (image.Image, error)
	Close() error
}

// Loader opens a Document from PDF bytes.
type Loader func(data []byte) (Document, error)

func open(op string, load Loader, data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, toolerr.Decode(op, fmt.Errorf("empty document"))
	}
	doc, err := load(data)
	if err != nil {
		return nil, toolerr.Decode(op, err)
	}
	if doc.NumPages() < 1 {
		doc.Close()
		return nil, toolerr.Decode(op, fmt.Errorf("document has no pages"))
	}
	return doc, nil
}

func renderPage(op string, doc Document, page int, scale float64) (image.Image, error) {
	img, err := doc.RenderPage(page-1, scale)
	if err != nil {
		return nil, toolerr.Decode(op, fmt.Errorf("render page %d: %w", page, err))
	}
	return img, nil
}

// ToImages renders the pages selected by spec (every page when empty) at
// ImageExportScale and returns them as PNG files page-N.png in a ZIP archive.
func ToImages(ctx context.Context, data []byte, load Loader, spec string) ([]byte, error) {
	const op = "pdf.ToImages"

	doc, err := open(op, load, data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages, err := SelectPages(spec, doc.NumPages())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := renderPage(op, doc, page, ImageExportScale)
		if err != nil {
			return nil, err
		}
		png, err := raster.Encode(img, imaging.PNG, 0)
		if err != nil {
			return nil, err
		}
		w, err := zw.Create(fmt.Sprintf("page-%d.png", page))
		if err != nil {
			return nil, toolerr.Export(op, err)
		}
		if _, err := w.Write(png); err != nil {
			return nil, toolerr.Export(op, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return buf.Bytes(), nil
}

// Compress rasterizes every page at CompressScale and rebuilds the document
// from JPEG page images. Pages keep their original point size. quality is in
// [MinCompressQuality, MaxCompressQuality].
func Compress(ctx context.Context, data []byte, load Loader, quality float64, log logrus.FieldLogger) ([]byte, error) {
	const op = "pdf.Compress"
	if math.IsNaN(quality) || quality < MinCompressQuality || quality > MaxCompressQuality {
		return nil, toolerr.Rejected(op, "quality %v out of range [%v,%v]", quality, MinCompressQuality, MaxCompressQuality)
	}

	src, err := open(op, load, data)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	jpegQuality := int(math.Round(quality * 100))
	out := newDocument("pt")
	for page := 1; page <= src.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := renderPage(op, src, page, CompressScale)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		w, h := float64(b.Dx())/CompressScale, float64(b.Dy())/CompressScale

		c := out.addPage(w, h)
		name, err := out.embed(img, imaging.JPEG, jpegQuality)
		if err != nil {
			return nil, toolerr.Export(op, err)
		}
		c.placeImage(name, 0, 0, w, h)
		log.WithFields(logrus.Fields{"page": page, "width": w, "height": h}).Debug("compressed page")
	}

	res, err := out.bytes(op)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"pages":    src.NumPages(),
		"original": len(data),
		"result":   len(res),
	}).Info("compressed PDF")
	return res, nil
}
