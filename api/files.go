package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"file_tools/toolerr"

	"github.com/gin-gonic/gin"
)

// upload is a fully read multipart file.
type upload struct {
	Name string
	Data []byte
}

func (s *Server) formFile(c *gin.Context, field string) (*upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, toolerr.Rejected("api.upload", "no %s file provided", field)
	}
	return s.readFile(header)
}

func (s *Server) readFile(header *multipart.FileHeader) (*upload, error) {
	const op = "api.upload"
	maxSize := s.config.MaxFileSize
	if header.Size > maxSize {
		return nil, toolerr.Rejected(op, "file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}
	f, err := header.Open()
	if err != nil {
		return nil, toolerr.Rejected(op, "failed to read upload: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, toolerr.Rejected(op, "failed to read upload: %v", err)
	}
	if int64(len(data)) > maxSize {
		return nil, toolerr.Rejected(op, "file exceeds maximum allowed %d bytes", maxSize)
	}
	if len(data) == 0 {
		return nil, toolerr.Rejected(op, "%s is empty", sanitizeFilename(header.Filename))
	}
	return &upload{Name: header.Filename, Data: data}, nil
}

// pdfFile reads the "pdf" upload and checks its header.
func (s *Server) pdfFile(c *gin.Context) (*upload, error) {
	u, err := s.formFile(c, "pdf")
	if err != nil {
		return nil, err
	}
	if !isPDF(u.Data) {
		return nil, toolerr.Rejected("api.upload", "invalid PDF file: header does not match")
	}
	return u, nil
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// sendFile returns data as a download.
func sendFile(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sanitizeFilename(filename)))
	c.Data(http.StatusOK, contentType, data)
}

// outputName derives "name_suffix.ext" from the uploaded file name.
func outputName(original, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "document"
	}
	return sanitizeFilename(base + "_" + suffix + ext)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '"' {
			return -1
		}
		return r
	}, filename)
	filename = strings.TrimSpace(filepath.Base(filename))
	if filename == "" || filename == "." {
		filename = "document"
	}
	return filename
}

// fail maps err to a status, logs it and aborts with {"error": msg}.
func (s *Server) fail(c *gin.Context, err error) {
	status, reason := statusOf(err)
	entry := s.logger(c).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("tool failed")
	} else {
		entry.Warn("request rejected")
	}

	msg := err.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength] + "..."
	}
	body := gin.H{"error": msg}
	if reason != "" {
		body["reason"] = reason
	}
	c.AbortWithStatusJSON(status, body)
}

func statusOf(err error) (int, string) {
	switch toolerr.KindOf(err) {
	case toolerr.ErrInputRejected:
		return http.StatusBadRequest, ""
	case toolerr.ErrDecodeFailed:
		return http.StatusUnprocessableEntity, ""
	case toolerr.ErrUnauthorized:
		return http.StatusBadGateway, "unauthorized"
	case toolerr.ErrQuotaExceeded:
		return http.StatusBadGateway, "quota_exceeded"
	case toolerr.ErrExternalService:
		return http.StatusBadGateway, "external_service"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "canceled"
	}
	return http.StatusInternalServerError, ""
}

func formFloat(c *gin.Context, name string, def float64) (float64, error) {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, toolerr.Rejected("api.form", "%s must be a number, got %q", name, v)
	}
	return f, nil
}

func formInt(c *gin.Context, name string, def int) (int, error) {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, toolerr.Rejected("api.form", "%s must be an integer, got %q", name, v)
	}
	return i, nil
}

func formBool(c *gin.Context, name string, def bool) (bool, error) {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" {
		return def, nil
	}
	if v == "on" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, toolerr.Rejected("api.form", "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}
