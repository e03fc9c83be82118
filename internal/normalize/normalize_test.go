package normalize

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/transcoder/internal/codec"
)

func TestNormalizeDiscardsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	buf := &codec.Buffer{Image: src, Exif: []byte("exif")}
	out := Normalize(buf, codec.Descriptor{ColorMode: codec.ModeRGBA})

	rgb, ok := out.Image.(*image.NRGBA)
	require.True(t, ok)

	// Color channels survive untouched, alpha is forced opaque.
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, rgb.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, rgb.NRGBAAt(1, 0))
}

func TestNormalizeIndexed(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{B: 255, A: 255},
	})
	src.SetColorIndex(1, 0, 1)

	out := Normalize(&codec.Buffer{Image: src}, codec.Descriptor{ColorMode: codec.ModeIndexed})

	rgb, ok := out.Image.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, rgb.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, rgb.NRGBAAt(1, 0))
}

func TestNormalizeForcesGrayscaleToRGB(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	out := Normalize(&codec.Buffer{Image: src}, codec.Descriptor{ColorMode: codec.ModeGrayscale})

	_, ok := out.Image.(*image.NRGBA)
	assert.True(t, ok)
}

func TestNormalizePassesThroughRGB(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	buf := &codec.Buffer{Image: src, Exif: []byte("exif"), ICC: []byte("icc")}

	out := Normalize(buf, codec.Descriptor{ColorMode: codec.ModeRGB})
	assert.Same(t, buf.Image, out.Image)
}

func TestNormalizeClearsMetadataSideTable(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	buf := &codec.Buffer{Image: src, Exif: []byte("exif"), ICC: []byte("icc")}

	out := Normalize(buf, codec.Descriptor{ColorMode: codec.ModeRGBA})
	assert.Nil(t, out.Exif)
	assert.Nil(t, out.ICC)
}
