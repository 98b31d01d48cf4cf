package image

import (
	"bytes"
	goimage "image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDownscale_ShrinksWideImage(t *testing.T) {
	raw := encodeTestJPEG(t, 2400, 1200)
	out, err := Downscale(raw)
	require.NoError(t, err)

	decoded, _, err := goimage.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxWidth, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}

func TestDownscale_LeavesNarrowImageWidthAlone(t *testing.T) {
	raw := encodeTestJPEG(t, 400, 300)
	out, err := Downscale(raw)
	require.NoError(t, err)

	decoded, _, err := goimage.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, decoded.Bounds().Dx())
}
