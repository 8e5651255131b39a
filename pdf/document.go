package pdf

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"file_tools/toolerr"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// newConfig returns a relaxed pdfcpu configuration. pdfcpu's on-disk config
// directory is never touched; the service only works on in-memory documents.
func newConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the number of pages of data. Anything pdfcpu cannot read
// is DecodeFailed.
func PageCount(data []byte) (int, error) {
	const op = "pdf.PageCount"
	if len(data) == 0 {
		return 0, toolerr.Decode(op, errors.New("empty document"))
	}
	n, err := api.PageCount(bytes.NewReader(data), newConfig())
	if err != nil {
		return 0, toolerr.Decode(op, err)
	}
	if n < 1 {
		return 0, toolerr.Decode(op, errors.New("document has no pages"))
	}
	return n, nil
}

// Resave optimizes and rewrites a PDF: unused objects are dropped and
// duplicate resources shared.
func Resave(data []byte) ([]byte, error) {
	const op = "pdf.Resave"
	if _, err := PageCount(data); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, newConfig()); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return out.Bytes(), nil
}

// RemovePages removes the pages named by spec ("1,3-5") from data.
func RemovePages(data []byte, spec string) ([]byte, error) {
	const op = "pdf.RemovePages"

	if strings.TrimSpace(spec) == "" {
		return nil, toolerr.Rejected(op, "no pages to remove")
	}

	// Page numbers are checked against the page count while parsing
	totalPages, err := PageCount(data)
	if err != nil {
		return nil, err
	}
	pageNumbers, err := ParsePageSpecifier(spec, totalPages)
	if err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	if len(pageNumbers) == totalPages {
		return nil, toolerr.Rejected(op, "cannot remove all %d pages", totalPages)
	}

	var out bytes.Buffer
	if err := api.RemovePages(bytes.NewReader(data), &out, pageSelection(pageNumbers), newConfig()); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return out.Bytes(), nil
}
