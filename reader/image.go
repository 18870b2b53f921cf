package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

// minOCRWidth is the narrowest page image fed to OCR without upscaling.
// Tesseract accuracy degrades sharply below roughly 300 DPI equivalents.
const minOCRWidth = 1800

// PrepareImage decodes a page image and returns it as grayscale PNG,
// upscaled with Catmull-Rom resampling when narrower than minOCRWidth.
func PrepareImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reader: decode page image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < minOCRWidth {
		scale := float64(minOCRWidth) / float64(width)
		height = int(float64(height) * scale)
		width = minOCRWidth
	}

	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("reader: encode page image: %w", err)
	}
	return buf.Bytes(), nil
}
