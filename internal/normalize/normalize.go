// Package normalize converts decoded buffers to plain RGB and strips the
// metadata side-table so neither alpha nor EXIF/ICC data reaches the
// encoder.
//
// Alpha is discarded, not composited: the color channels are kept as-is and
// the alpha channel is dropped. This is lossy for semi-transparent pixels
// and intentional. Grayscale is also forced to RGB so every encoded
// derivative has the same channel layout.
package normalize

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelforge/transcoder/internal/codec"
)

// Normalize returns a buffer holding RGB pixels with an empty side-table.
// Buffers already in RGB are passed through, metadata still cleared.
func Normalize(buf *codec.Buffer, desc codec.Descriptor) *codec.Buffer {
	if desc.ColorMode == codec.ModeRGB {
		return &codec.Buffer{Image: buf.Image}
	}
	return &codec.Buffer{Image: toRGB(buf.Image)}
}

// toRGB produces an NRGBA image with every alpha sample forced opaque.
// Clone keeps non-premultiplied color channels intact, so dropping alpha
// afterwards does not shift colors.
func toRGB(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xFF
	}
	return out
}
