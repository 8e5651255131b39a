package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// samplePDF builds a document of n w x h point pages.
func samplePDF(t *testing.T, n int, w, h float64) []byte {
	t.Helper()
	f := fpdf.New("P", "pt", "A4", "")
	for i := 1; i <= n; i++ {
		f.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		f.SetFont("Helvetica", "", 12)
		f.Text(20, 30, fmt.Sprintf("page %d", i))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Output(&buf))
	return buf.Bytes()
}

// fakeDocument renders blank pages of the given point sizes.
type fakeDocument struct {
	sizes  [][2]float64
	closed bool
}

func (d *fakeDocument) NumPages() int { return len(d.sizes) }

func (d *fakeDocument) RenderPage(index int, scale float64) (image.Image, error) {
	if index < 0 || index >= len(d.sizes) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	s := d.sizes[index]
	return imaging.New(int(s[0]*scale), int(s[1]*scale), color.White), nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

func fakeLoader(doc *fakeDocument) Loader {
	return func([]byte) (Document, error) { return doc, nil }
}
