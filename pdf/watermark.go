package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"file_tools/raster"
	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Watermark stamps the pages of data selected by pages (every page when
// empty) and returns the rewritten document. Every page of the source is
// imported so unselected pages are carried over unchanged. The whole document
// is built before anything is returned.
func Watermark(ctx context.Context, data []byte, pages string, layout watermark.Layout, spec watermark.Spec, log logrus.FieldLogger) (_ []byte, err error) {
	const op = "pdf.Watermark"

	if err := spec.Validate(); err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	total, err := PageCount(data)
	if err != nil {
		return nil, err
	}
	selected, err := SelectPages(pages, total)
	if err != nil {
		return nil, err
	}

	// gofpdi panics on objects it cannot parse
	defer func() {
		if r := recover(); r != nil {
			err = toolerr.Decode(op, fmt.Errorf("import page: %v", r))
		}
	}()

	out := newDocument("pt")
	imp := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tpl := imp.ImportPageFromStream(out.pdf, &rs, page, mediaBox)
		w, h := importedSize(imp, page)
		c := out.addPage(w, h)
		imp.UseImportedTemplate(out.pdf, tpl, 0, 0, w, h)

		if !lo.Contains(selected, page) {
			continue
		}
		n, err := watermark.Apply(&pageSurface{canvas: c}, layout, spec)
		if err != nil {
			return nil, toolerr.Export(op, fmt.Errorf("page %d: %w", page, err))
		}
		log.WithFields(logrus.Fields{"page": page, "stamps": n}).Debug("watermarked page")
	}

	res, err := out.bytes(op)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"pages": total, "watermarked": len(selected)}).Info("watermarked PDF")
	return res, nil
}

// importedSize returns the media box of an imported page in points.
func importedSize(imp *gofpdi.Importer, page int) (float64, float64) {
	box := imp.GetPageSizes()[page][mediaBox]
	w, h := box["w"], box["h"]
	if w <= 0 || h <= 0 {
		return defaultPageWidthPt, defaultPageHeightPt
	}
	return w, h
}

// PreviewPage rasterizes the first page at PreviewScale and stamps it, so
// preview placements use page points as pixels.
func PreviewPage(data []byte, load Loader, layout watermark.Layout, spec watermark.Spec, fonts *raster.FontSet) ([]byte, error) {
	const op = "pdf.PreviewPage"

	doc, err := open(op, load, data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	img, err := renderPage(op, doc, 1, PreviewScale)
	if err != nil {
		return nil, err
	}
	return raster.Preview(img, layout, spec, fonts)
}
