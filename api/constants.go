package api

import "time"

const (
	// DefaultPreviewTTL is how long an idle preview session is remembered
	DefaultPreviewTTL = 10 * time.Minute

	// DefaultTargetKB is the default image compressor target size
	DefaultTargetKB = 500

	// MaxUploadFiles bounds multi-file uploads (images to PDF)
	MaxUploadFiles = 100

	// multipartMemory is the in-memory part of a parsed multipart form
	multipartMemory = 32 << 20

	// requestIDKey is the gin context key of the request id
	requestIDKey = "request_id"

	// maxErrorLength truncates error messages returned to clients
	maxErrorLength = 200
)
