// Package codec turns raw object bytes into a pixel buffer plus a
// descriptor, and re-encodes pixel buffers as compressed JPEG.
package codec

import (
	"bytes"
	"image"

	// Register the decoders for every supported source format. Unusual but
	// valid formats (bmp, tiff, webp) must decode instead of being rejected.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/pixelforge/transcoder/internal/errs"
)

// ColorMode is the per-pixel channel layout of a decoded image.
type ColorMode string

const (
	ModeRGB       ColorMode = "RGB"
	ModeRGBA      ColorMode = "RGBA"
	ModeIndexed   ColorMode = "Indexed"
	ModeGrayscale ColorMode = "Grayscale"
	ModeOther     ColorMode = "Other"
)

// Descriptor captures what Decode learned about the source. Immutable after
// creation.
type Descriptor struct {
	Width        int
	Height       int
	ColorMode    ColorMode
	SourceFormat string
}

// Buffer is the decoded pixel data together with the metadata side-table
// carried along from the source. The Normalizer clears the side-table so
// nothing propagates into the encoded output.
type Buffer struct {
	Image image.Image
	Exif  []byte
	ICC   []byte
}

// Decode parses raw bytes into a pixel buffer and its descriptor.
// Unrecognized signatures, truncated streams and empty payloads all fail
// with the unsupported-format kind.
func Decode(data []byte) (Descriptor, *Buffer, error) {
	if len(data) == 0 {
		return Descriptor{}, nil, errs.Newf(errs.KindUnsupportedFormat, "decode", "empty object body")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		detected := mimetype.Detect(data)
		return Descriptor{}, nil, errs.Newf(errs.KindUnsupportedFormat, "decode",
			"cannot decode %s payload: %v", detected.String(), err)
	}

	bounds := img.Bounds()
	desc := Descriptor{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		ColorMode:    colorModeOf(img),
		SourceFormat: format,
	}

	buf := &Buffer{Image: img}
	switch format {
	case "jpeg":
		buf.Exif, buf.ICC = scanJPEGSegments(data)
	case "png":
		buf.Exif, buf.ICC = scanPNGChunks(data)
	}
	return desc, buf, nil
}

// Encode compresses the buffer as baseline JPEG at the given quality.
// Identical inputs produce byte-identical output.
func Encode(buf *Buffer, quality int) ([]byte, error) {
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf.Image, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errs.Newf(errs.KindUnexpected, "encode", "jpeg encoding failed: %v", err)
	}
	return out.Bytes(), nil
}

func colorModeOf(img image.Image) ColorMode {
	switch img.(type) {
	case *image.YCbCr:
		return ModeRGB
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.NYCbCrA:
		return ModeRGBA
	case *image.Paletted:
		return ModeIndexed
	case *image.Gray, *image.Gray16:
		return ModeGrayscale
	default:
		return ModeOther
	}
}
