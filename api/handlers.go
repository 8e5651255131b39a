package api

import (
	"strings"

	"file_tools/pdf"
	"file_tools/toolerr"

	"github.com/gin-gonic/gin"
)

const pdfContentType = "application/pdf"

func (s *Server) HandleResave(c *gin.Context) {
	s.handlePDFFile(c, pdf.Resave, "resaved")
}

func (s *Server) HandleRemovePages(c *gin.Context) {
	pagesParam := c.PostForm("pages")
	if strings.TrimSpace(pagesParam) == "" {
		s.fail(c, toolerr.Rejected("api.RemovePages", "no pages specified"))
		return
	}
	s.handlePDFFile(c, func(data []byte) ([]byte, error) {
		return pdf.RemovePages(data, pagesParam)
	}, "pages_removed")
}

func (s *Server) HandleProtect(c *gin.Context) {
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")
	s.handlePDFFile(c, func(data []byte) ([]byte, error) {
		return pdf.Protect(data, password, confirm)
	}, "protected")
}

func (s *Server) HandleUnlock(c *gin.Context) {
	password := c.PostForm("password")
	s.handlePDFFile(c, func(data []byte) ([]byte, error) {
		return pdf.Unlock(data, password)
	}, "unlocked")
}

func (s *Server) HandlePDFCompress(c *gin.Context) {
	quality, err := formFloat(c, "quality", pdf.DefaultCompressQuality)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.handlePDFFile(c, func(data []byte) ([]byte, error) {
		return pdf.Compress(c.Request.Context(), data, s.load, quality, s.logger(c))
	}, "compressed")
}

func (s *Server) HandlePDFToImages(c *gin.Context) {
	u, err := s.pdfFile(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	archive, err := pdf.ToImages(c.Request.Context(), u.Data, s.load, c.PostForm("pages"))
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, "application/zip", outputName(u.Name, "images", ".zip"), archive)
}

// handlePDFFile reads the "pdf" upload, runs operation on it and returns the
// result as name_suffix.pdf.
func (s *Server) handlePDFFile(c *gin.Context, operation func([]byte) ([]byte, error), suffix string) {
	u, err := s.pdfFile(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	out, err := operation(u.Data)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger(c).WithField("operation", suffix).
		WithField("input_bytes", len(u.Data)).
		WithField("output_bytes", len(out)).
		Debug("PDF operation done")
	sendFile(c, pdfContentType, outputName(u.Name, suffix, ".pdf"), out)
}
