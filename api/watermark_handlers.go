package api

import (
	"image"
	"net/http"

	"file_tools/pdf"
	"file_tools/raster"
	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

// watermarkRequest is the bound and validated input of both watermark
// endpoints.
type watermarkRequest struct {
	file   *upload
	spec   watermark.Spec
	layout watermark.Layout
}

// bindWatermark binds the request options over the configured defaults and
// decodes the optional logo.
func (s *Server) bindWatermark(c *gin.Context) (*watermarkRequest, error) {
	const op = "api.Watermark"

	opts := s.config.Watermark
	if err := c.ShouldBind(&opts); err != nil {
		return nil, toolerr.Rejected(op, "invalid options: %v", err)
	}

	var logo image.Image
	if _, err := c.FormFile("logo"); err == nil {
		u, err := s.formFile(c, "logo")
		if err != nil {
			return nil, err
		}
		if logo, err = raster.DecodeLogo(u.Data); err != nil {
			return nil, err
		}
	}

	spec, layout, err := opts.Build(logo)
	if err != nil {
		return nil, err
	}
	file, err := s.formFile(c, "file")
	if err != nil {
		return nil, err
	}
	return &watermarkRequest{file: file, spec: spec, layout: layout}, nil
}

// HandleWatermarkPreview renders a PNG preview. Requests carrying a session
// (form field "session" or header X-Preview-Session) are last-write-wins: a
// render that was superseded while running is answered with 409 instead of
// its image.
func (s *Server) HandleWatermarkPreview(c *gin.Context) {
	session := c.PostForm("session")
	if session == "" {
		session = c.GetHeader("X-Preview-Session")
	}
	var ticket watermark.Ticket
	if session != "" {
		ticket = s.latest.Begin(session)
	}

	req, err := s.bindWatermark(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var out []byte
	if isPDF(req.file.Data) {
		out, err = pdf.PreviewPage(req.file.Data, s.load, req.layout, req.spec, s.fonts)
	} else {
		var img image.Image
		if img, _, err = raster.Decode(req.file.Data); err == nil {
			out, err = raster.Preview(img, req.layout, req.spec, s.fonts)
		}
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	if session != "" && !s.latest.Current(ticket) {
		s.logger(c).WithField("session", session).Debug("dropping superseded preview")
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "preview superseded by a newer request"})
		return
	}
	c.Data(http.StatusOK, raster.ContentType(imaging.PNG), out)
}

// HandleWatermarkExport watermarks an image (same format out) or a PDF (the
// pages named by "pages", every page by default).
func (s *Server) HandleWatermarkExport(c *gin.Context) {
	req, err := s.bindWatermark(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	if isPDF(req.file.Data) {
		out, err := pdf.Watermark(c.Request.Context(), req.file.Data, c.PostForm("pages"), req.layout, req.spec, s.logger(c))
		if err != nil {
			s.fail(c, err)
			return
		}
		sendFile(c, pdfContentType, outputName(req.file.Name, "watermarked", ".pdf"), out)
		return
	}

	out, format, err := raster.WatermarkImage(req.file.Data, req.layout, req.spec, s.fonts)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, raster.ContentType(format), outputName(req.file.Name, "watermarked", raster.Extension(format)), out)
}
