package raster

import (
	"image"
	"testing"

	"file_tools/toolerr"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsFormat(t *testing.T) {
	for _, f := range []imaging.Format{imaging.JPEG, imaging.PNG, imaging.GIF, imaging.BMP} {
		t.Run(f.String(), func(t *testing.T) {
			img, got, err := Decode(encoded(t, solid(30, 20, red), f))

			require.NoError(t, err)
			assert.Equal(t, f, got)
			assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))

	assert.ErrorIs(t, err, toolerr.ErrDecodeFailed)
}

func TestContentTypeAndExtension(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentType(imaging.JPEG))
	assert.Equal(t, "image/png", ContentType(imaging.PNG))
	assert.Equal(t, ".jpg", Extension(imaging.JPEG))
	assert.Equal(t, ".png", Extension(imaging.PNG))
	assert.Equal(t, ".gif", Extension(imaging.GIF))
}

func TestEncodeQualityFallback(t *testing.T) {
	img := solid(64, 64, red)

	low, err := Encode(img, imaging.JPEG, 0)
	require.NoError(t, err)
	def, err := Encode(img, imaging.JPEG, DefaultJPEGQuality)
	require.NoError(t, err)

	assert.Equal(t, def, low)
}
