package api

import (
	"image"
	"strconv"

	"file_tools/pdf"
	"file_tools/raster"
	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

func (s *Server) HandleImageCompress(c *gin.Context) {
	targetKB, err := formInt(c, "target_kb", DefaultTargetKB)
	if err != nil {
		s.fail(c, err)
		return
	}
	u, err := s.formFile(c, "file")
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := raster.CompressImage(u.Data, targetKB)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("X-Original-Size", strconv.Itoa(res.OriginalSize))
	c.Header("X-Compressed-Size", strconv.Itoa(len(res.Data)))
	c.Header("X-Quality", strconv.Itoa(res.Quality))
	c.Header("X-Reduction", strconv.FormatFloat(res.Reduction(), 'f', 1, 64))
	sendFile(c, raster.ContentType(imaging.JPEG), outputName(u.Name, "compressed", ".jpg"), res.Data)
}

func (s *Server) HandleImageResize(c *gin.Context) {
	width, err := formInt(c, "width", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	height, err := formInt(c, "height", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	keepAspect, err := formBool(c, "keep_aspect", true)
	if err != nil {
		s.fail(c, err)
		return
	}
	u, err := s.formFile(c, "file")
	if err != nil {
		s.fail(c, err)
		return
	}

	out, format, err := raster.ResizeImage(u.Data, width, height, keepAspect)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, raster.ContentType(format), outputName(u.Name, "resized", raster.Extension(format)), out)
}

func (s *Server) HandleImagesToPDF(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, toolerr.Rejected("api.ImagesToPDF", "no images provided"))
		return
	}
	headers := form.File["files"]
	if len(headers) > MaxUploadFiles {
		s.fail(c, toolerr.Rejected("api.ImagesToPDF", "at most %d images, got %d", MaxUploadFiles, len(headers)))
		return
	}

	files := make([]pdf.File, 0, len(headers))
	for _, h := range headers {
		u, err := s.readFile(h)
		if err != nil {
			s.fail(c, err)
			return
		}
		files = append(files, pdf.File{Name: u.Name, Data: u.Data})
	}

	out, err := pdf.ImagesToPDF(c.Request.Context(), files)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, pdfContentType, "images.pdf", out)
}

func (s *Server) HandleRemoveBackground(c *gin.Context) {
	u, err := s.formFile(c, "file")
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, _, err := raster.Decode(u.Data); err != nil {
		s.fail(c, err)
		return
	}

	out, err := s.remover.Remove(c.Request.Context(), u.Data)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, raster.ContentType(imaging.PNG), outputName(u.Name, "no-bg", ".png"), out)
}

// HandleProfilePhoto crops a square (crop_x, crop_y, crop_size in source
// pixels, or the default center crop), optionally removes the background and
// composites the result over the background color.
func (s *Server) HandleProfilePhoto(c *gin.Context) {
	const op = "api.ProfilePhoto"

	bg, err := watermark.ParseHexColor(c.DefaultPostForm("background", "#ffffff"))
	if err != nil {
		s.fail(c, toolerr.Rejected(op, "%v", err))
		return
	}
	removeBG, err := formBool(c, "remove_background", false)
	if err != nil {
		s.fail(c, err)
		return
	}
	box, err := cropBox(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	u, err := s.formFile(c, "file")
	if err != nil {
		s.fail(c, err)
		return
	}

	img, _, err := raster.Decode(u.Data)
	if err != nil {
		s.fail(c, err)
		return
	}
	var photo image.Image
	if photo, err = raster.CropSquare(img, box); err != nil {
		s.fail(c, err)
		return
	}

	if removeBG {
		png, err := raster.Encode(photo, imaging.PNG, 0)
		if err != nil {
			s.fail(c, err)
			return
		}
		cut, err := s.remover.Remove(c.Request.Context(), png)
		if err != nil {
			s.fail(c, err)
			return
		}
		if photo, _, err = raster.Decode(cut); err != nil {
			s.fail(c, toolerr.New(op, toolerr.ErrExternalService, err))
			return
		}
	}

	out, err := raster.Encode(raster.OnBackground(photo, bg), imaging.PNG, 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, raster.ContentType(imaging.PNG), outputName(u.Name, "profile", ".png"), out)
}

// cropBox reads an optional square crop box; nil means the default crop.
func cropBox(c *gin.Context) (*image.Rectangle, error) {
	if c.PostForm("crop_size") == "" {
		return nil, nil
	}
	size, err := formInt(c, "crop_size", 0)
	if err != nil {
		return nil, err
	}
	x, err := formInt(c, "crop_x", 0)
	if err != nil {
		return nil, err
	}
	y, err := formInt(c, "crop_y", 0)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, toolerr.Rejected("api.form", "crop_size must be positive, got %d", size)
	}
	r := image.Rect(x, y, x+size, y+size)
	return &r, nil
}

func (s *Server) HandleQRCode(c *gin.Context) {
	out, err := raster.QRCode(c.PostForm("text"))
	if err != nil {
		s.fail(c, err)
		return
	}
	sendFile(c, raster.ContentType(imaging.PNG), "qrcode.png", out)
}
