package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// textScanPrompt is shared by all vision backends. The model transcribes, it
// does not interpret: date parsing happens in the expiry package.
const textScanPrompt = `You are reading the label of a food product. Transcribe every distinct piece of printed text you can see, one entry per visual line or text region. Do not interpret, translate or reorder anything; keep the original spelling, digits and punctuation.

Return ONLY a valid JSON array in this exact format:
[
  {"text": "A CONSOMMER AVANT LE", "confidence": 0.97},
  {"text": "19/11/2026", "confidence": 0.92}
]

Important:
- One entry per line of text as printed on the packaging
- "confidence" is your certainty that the transcription is exact, between 0.0 and 1.0
- Include partial or garbled fragments too, with a low confidence
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// renderPDF rasterizes the first page of a PDF as PNG. Labels photographed to
// PDF are single page in practice.
func renderPDF(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeToPNG re-encodes any supported image format as PNG. HEIC/HEIF (the
// default on iPhones) is handled separately because the standard image
// package cannot decode it.
func decodeToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	if isHEIC(imageData, mimeType) {
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("decoding image (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %w", err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEIC detects HEIC/HEIF input from the ftyp box brand or the MIME type.
func isHEIC(data []byte, mimeType string) bool {
	if strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif") {
		return true
	}
	if len(data) >= 12 && string(data[4:8]) == "ftyp" {
		switch string(data[8:12]) {
		case "heic", "heif", "mif1", "msf1":
			return true
		}
	}
	return false
}

// preparePNG normalizes any accepted upload (PDF, JPEG, PNG, GIF, HEIC) into
// PNG bytes the vision backends can consume directly.
func preparePNG(imageData []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	switch {
	case mimeType == "application/pdf":
		return renderPDF(imageData)
	case mimeType == "image/png" && !isHEIC(imageData, mimeType):
		return imageData, nil
	default:
		return decodeToPNG(imageData, mimeType)
	}
}
