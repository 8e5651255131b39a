// Package render rasterizes PDF pages with MuPDF. It is the only package that
// needs cgo; everything else depends on the pdf.Document interface.
package render

import (
	"fmt"
	"image"
	"sync"

	"file_tools/pdf"

	"github.com/gen2brain/go-fitz"
)

// baseDPI is the resolution at which one pixel equals one PDF point.
const baseDPI = 72

// Document is a MuPDF document. MuPDF contexts are not safe for concurrent
// use, so rendering is serialized per document.
type Document struct {
	mu  sync.Mutex
	doc *fitz.Document
}

// Load opens a PDF from memory. It satisfies pdf.Loader.
func Load(data []byte) (pdf.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

// RenderPage renders the zero based page at scale times its point size.
func (d *Document) RenderPage(index int, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", scale)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	img, err := d.doc.ImageDPI(index, baseDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	return img, nil
}

func (d *Document) Close() error {
	return d.doc.Close()
}
