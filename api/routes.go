package api

import (
	"time"

	"file_tools/bgremove"
	"file_tools/pdf"
	"file_tools/raster"
	"file_tools/watermark"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port        string
	MaxFileSize int64
	PreviewTTL  time.Duration

	// Watermark holds the defaults request options are bound on top of.
	Watermark watermark.Options
}

// Server carries the configuration and collaborators shared by all handlers.
type Server struct {
	config  *Config
	fonts   *raster.FontSet
	load    pdf.Loader
	remover bgremove.Remover
	latest  *watermark.Latest
	log     logrus.FieldLogger
}

// NewServer wires the handlers. A nil fonts uses the embedded Go fonts.
func NewServer(config *Config, fonts *raster.FontSet, load pdf.Loader, remover bgremove.Remover, log logrus.FieldLogger) *Server {
	if fonts == nil {
		fonts = raster.DefaultFontSet()
	}
	ttl := config.PreviewTTL
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &Server{
		config:  config,
		fonts:   fonts,
		load:    load,
		remover: remover,
		latest:  watermark.NewLatest(ttl),
		log:     log,
	}
}

func SetupRoutes(r *gin.Engine, s *Server) {
	r.MaxMultipartMemory = multipartMemory
	r.Use(RequestLogger(s.log))

	wm := r.Group("/api/watermark")
	{
		wm.POST("/preview", s.HandleWatermarkPreview)
		wm.POST("/export", s.HandleWatermarkExport)
	}

	img := r.Group("/api/image")
	{
		img.POST("/compress", s.HandleImageCompress)
		img.POST("/resize", s.HandleImageResize)
		img.POST("/to-pdf", s.HandleImagesToPDF)
		img.POST("/remove-background", s.HandleRemoveBackground)
		img.POST("/profile-photo", s.HandleProfilePhoto)
	}

	pdfGroup := r.Group("/api/pdf")
	{
		pdfGroup.POST("/to-images", s.HandlePDFToImages)
		pdfGroup.POST("/compress", s.HandlePDFCompress)
		pdfGroup.POST("/resave", s.HandleResave)
		pdfGroup.POST("/remove-pages", s.HandleRemovePages)
		pdfGroup.POST("/protect", s.HandleProtect)
		pdfGroup.POST("/unlock", s.HandleUnlock)
	}

	r.POST("/api/qr", s.HandleQRCode)
}
