package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")

// Recognizer is the capability the pipeline needs from an OCR engine.
// *Client satisfies it; tests substitute fakes.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	Close() error
}
