// Package catalog looks up product metadata by barcode and infers rough
// shelf-life durations. It sits downstream of date recognition and is never
// consulted by it.
package catalog

// Product holds the metadata known about a scanned product.
type Product struct {
	Barcode  string `json:"barcode,omitempty"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Category string `json:"category,omitempty"`
	Quantity string `json:"quantity,omitempty"`
}
