package pdf

const (
	// PreviewScale rasterizes the first page at its point size for previews.
	PreviewScale = 1.0

	// ImageExportScale is used by the PDF to images tool.
	ImageExportScale = 2.0

	// CompressScale is the render scale of the PDF compressor.
	CompressScale = 1.5

	// DefaultCompressQuality is the JPEG quality of compressed pages (0.1 - 1.0)
	DefaultCompressQuality = 0.7
	MinCompressQuality     = 0.1
	MaxCompressQuality     = 1.0

	// A4 page size in millimetres, used by the images to PDF tool.
	A4WidthMM  = 210.0
	A4HeightMM = 297.0

	// A4 in points, used when an imported page reports no media box.
	defaultPageWidthPt  = 595.28
	defaultPageHeightPt = 841.89

	mediaBox = "/MediaBox"
)
