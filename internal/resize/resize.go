// Package resize downscales pixel buffers by a uniform factor.
package resize

import (
	"github.com/disintegration/imaging"

	"github.com/pixelforge/transcoder/internal/codec"
)

// TargetSize computes floor(dim × scale) per axis, clamped to 1 pixel so an
// aggressive factor can never produce an empty image. Both axes use the
// same factor, so the aspect ratio is preserved.
func TargetSize(width, height int, scale float64) (int, int) {
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Resize resamples the buffer to the scaled dimensions with the given
// filter. High-quality filters (Lanczos by default) avoid aliasing at the
// aggressive ratios this pipeline runs at.
func Resize(buf *codec.Buffer, desc codec.Descriptor, scale float64, filter string) (*codec.Buffer, int, int) {
	w, h := TargetSize(desc.Width, desc.Height, scale)
	resized := imaging.Resize(buf.Image, w, h, Filter(filter))
	return &codec.Buffer{Image: resized, Exif: buf.Exif, ICC: buf.ICC}, w, h
}

// Filter maps a configured filter name to its resample kernel. Unknown
// names fall back to Lanczos; config validation rejects them before the
// pipeline ever runs.
func Filter(name string) imaging.ResampleFilter {
	switch name {
	case "catmullrom":
		return imaging.CatmullRom
	case "linear":
		return imaging.Linear
	case "box":
		return imaging.Box
	case "nearest":
		return imaging.NearestNeighbor
	default:
		return imaging.Lanczos
	}
}
