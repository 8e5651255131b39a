package pdf

import (
	"context"
	"slices"
	"strings"

	"file_tools/raster"
	"file_tools/toolerr"

	"github.com/disintegration/imaging"
)

// MaxImagesPerPDF bounds the images to PDF tool.
const MaxImagesPerPDF = 100

// File is an uploaded file.
type File struct {
	Name string
	Data []byte
}

// ImagesToPDF puts each image on its own A4 portrait page, in file name
// order. Images are fit to the page width at the top of the page; images too
// tall for that are fit to the page height and centered horizontally.
func ImagesToPDF(ctx context.Context, files []File) ([]byte, error) {
	const op = "pdf.ImagesToPDF"
	if len(files) == 0 {
		return nil, toolerr.Rejected(op, "no images")
	}
	if len(files) > MaxImagesPerPDF {
		return nil, toolerr.Rejected(op, "at most %d images per document, got %d", MaxImagesPerPDF, len(files))
	}

	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b File) int {
		return strings.Compare(a.Name, b.Name)
	})

	out := newDocument("mm")
	for _, f := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, format, err := raster.Decode(f.Data)
		if err != nil {
			return nil, toolerr.New(op, toolerr.ErrDecodeFailed, err)
		}
		if format != imaging.JPEG {
			format = imaging.PNG
		}

		b := img.Bounds()
		w := A4WidthMM
		h := float64(b.Dy()) * w / float64(b.Dx())
		x := 0.0
		if h > A4HeightMM {
			h = A4HeightMM
			w = float64(b.Dx()) * h / float64(b.Dy())
			x = (A4WidthMM - w) / 2
		}

		c := out.addPage(A4WidthMM, A4HeightMM)
		name, err := out.embed(img, format, raster.DefaultJPEGQuality)
		if err != nil {
			return nil, toolerr.Export(op, err)
		}
		c.placeImage(name, x, 0, w, h)
	}
	return out.bytes(op)
}
