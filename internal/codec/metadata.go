package codec

import (
	"bytes"
	"encoding/binary"
)

var (
	exifPrefix = []byte("Exif\x00\x00")
	iccPrefix  = []byte("ICC_PROFILE\x00")
	pngSig     = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
)

// scanJPEGSegments walks the marker segments before the entropy-coded data
// and returns the raw EXIF (APP1) and ICC profile (APP2) payloads, if any.
func scanJPEGSegments(data []byte) (exif, icc []byte) {
	// Skip SOI.
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return
		}
		marker := data[pos+1]
		// SOS: segment headers end here.
		if marker == 0xDA {
			return
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < 2 || pos+2+length > len(data) {
			return
		}
		payload := data[pos+4 : pos+2+length]
		switch marker {
		case 0xE1:
			if exif == nil && bytes.HasPrefix(payload, exifPrefix) {
				exif = payload[len(exifPrefix):]
			}
		case 0xE2:
			if icc == nil && bytes.HasPrefix(payload, iccPrefix) {
				icc = payload[len(iccPrefix):]
			}
		}
		pos += 2 + length
	}
	return
}

// scanPNGChunks returns the eXIf and iCCP chunk payloads, if any.
func scanPNGChunks(data []byte) (exif, icc []byte) {
	if !bytes.HasPrefix(data, pngSig) {
		return
	}
	pos := len(pngSig)
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		chunkType := string(data[pos+4 : pos+8])
		if pos+8+length > len(data) {
			return
		}
		payload := data[pos+8 : pos+8+length]
		switch chunkType {
		case "eXIf":
			if exif == nil {
				exif = payload
			}
		case "iCCP":
			if icc == nil {
				icc = payload
			}
		case "IEND":
			return
		}
		// Chunk payload is followed by a 4-byte CRC.
		pos += 8 + length + 4
	}
	return
}
