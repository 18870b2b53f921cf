//go:build !ocr

// Package ocr recovers text from scanned filing pages that carry no
// embedded text layer.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. New returns ErrOCRNotEnabled; the pipeline treats that as "no OCR
// available" and reports scanned pages as empty. To enable OCR, rebuild
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

// Client is a stub OCR client; every operation reports that OCR support
// is not compiled in.
type Client struct{}

// New returns an error indicating OCR support is not enabled
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client. It is safe to call on a nil
// client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
