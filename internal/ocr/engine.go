// Package ocr reads text from product photos through vision models. It emits
// raw text fragments with per-fragment confidence; interpreting them is the
// expiry package's job.
package ocr

import (
	"github.com/fesperiquette82/keepeat/internal/expiry"
)

// Engine defines the interface for text recognition backends.
type Engine interface {
	// ReadText extracts the text fragments visible in an image, in the
	// order the model emitted them. The order is not guaranteed to be
	// reading order.
	ReadText(imageData []byte, contentType string) ([]expiry.Line, error)

	// Close releases backend resources.
	Close() error
}
