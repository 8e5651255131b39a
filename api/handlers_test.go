package api

import (
	"archive/zip"
	"bytes"
	"net/http"
	"testing"

	"file_tools/pdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResave(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/resave", nil, formFile{"pdf", "in.pdf", samplePDF(t, 2)}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "in_resaved.pdf")
	n, err := pdf.PageCount(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRemovePages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/remove-pages", map[string]string{"pages": "1,3"},
		formFile{"pdf", "in.pdf", samplePDF(t, 4)}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	n, err := pdf.PageCount(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRemovePagesValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/remove-pages", nil, formFile{"pdf", "in.pdf", samplePDF(t, 2)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(multipartRequest(t, "/api/pdf/remove-pages", map[string]string{"pages": "9"},
		formFile{"pdf", "in.pdf", samplePDF(t, 2)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(multipartRequest(t, "/api/pdf/remove-pages", map[string]string{"pages": "1"},
		formFile{"pdf", "in.pdf", []byte("GIF89a")}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(multipartRequest(t, "/api/pdf/remove-pages", map[string]string{"pages": "1"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorruptPDF(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/resave", nil, formFile{"pdf", "in.pdf", []byte("%PDF-1.4\ngarbage")}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProtectUnlock(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/protect",
		map[string]string{"password": "hunter22", "confirm_password": "hunter2"},
		formFile{"pdf", "in.pdf", samplePDF(t, 1)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(multipartRequest(t, "/api/pdf/protect",
		map[string]string{"password": "hunter22", "confirm_password": "hunter22"},
		formFile{"pdf", "in.pdf", samplePDF(t, 1)}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	locked := w.Body.Bytes()

	w = env.do(multipartRequest(t, "/api/pdf/unlock", map[string]string{"password": "nope"},
		formFile{"pdf", "in_protected.pdf", locked}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(multipartRequest(t, "/api/pdf/unlock", map[string]string{"password": "hunter22"},
		formFile{"pdf", "in_protected.pdf", locked}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	n, err := pdf.PageCount(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPDFToImages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/to-images", nil, formFile{"pdf", "in.pdf", []byte("%PDF-1.7")}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 2)
}

func TestPDFCompress(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(multipartRequest(t, "/api/pdf/compress", map[string]string{"quality": "0.5"},
		formFile{"pdf", "in.pdf", []byte("%PDF-1.7")}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	n, err := pdf.PageCount(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w = env.do(multipartRequest(t, "/api/pdf/compress", map[string]string{"quality": "3"},
		formFile{"pdf", "in.pdf", []byte("%PDF-1.7")}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
