package resize

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelforge/transcoder/internal/codec"
)

func TestTargetSize(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		scale         float64
		wantW, wantH  int
	}{
		{"typical downscale", 4000, 3000, 0.3, 1200, 900},
		{"floor applied", 101, 99, 0.5, 50, 49},
		{"identity", 640, 480, 1.0, 640, 480},
		{"clamped to one pixel", 10, 10, 0.05, 1, 1},
		{"tall strip clamps width only", 10, 400, 0.05, 1, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := TargetSize(tc.width, tc.height, tc.scale)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}

func TestResizeDimensions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 60))
	buf := &codec.Buffer{Image: src}
	desc := codec.Descriptor{Width: 100, Height: 60}

	out, w, h := Resize(buf, desc, 0.3, "lanczos")
	assert.Equal(t, 30, w)
	assert.Equal(t, 18, h)

	bounds := out.Image.Bounds()
	assert.Equal(t, 30, bounds.Dx())
	assert.Equal(t, 18, bounds.Dy())
}

func TestResizeTinyImageNeverEmpty(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	desc := codec.Descriptor{Width: 10, Height: 10}

	out, w, h := Resize(&codec.Buffer{Image: src}, desc, 0.05, "lanczos")
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, 1, out.Image.Bounds().Dx())
	assert.Equal(t, 1, out.Image.Bounds().Dy())
}
