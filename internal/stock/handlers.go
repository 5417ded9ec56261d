package stock

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fesperiquette82/keepeat/internal/catalog"
	"github.com/fesperiquette82/keepeat/internal/expiry"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	setCORSHeaders(w)
	writeJSON(w, code, map[string]string{"error": message})
}

// handleHealth reports liveness, unauthenticated so probes stay simple
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleListItems returns items, optionally filtered by ?status=
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", StatusActive, StatusConsumed, StatusThrown:
	default:
		writeError(w, http.StatusBadRequest, "Unknown status filter")
		return
	}

	items, err := s.service.ListItems(status)
	if err != nil {
		slog.Error("Error listing items", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleAddItem creates a new item
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var input ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.service.AddItem(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleGetItem returns a single item
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.service.GetItem(r.PathValue("id"))
	if err != nil {
		corsError(w, "Item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleUpdateItem replaces the editable fields of an item
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var input ItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.service.UpdateItem(r.PathValue("id"), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleConsumeItem marks an item as consumed
func (s *Server) handleConsumeItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.service.ConsumeItem(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleThrowItem marks an item as thrown away
func (s *Server) handleThrowItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.service.ThrowItem(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handlePriorityItems returns items expiring soon
func (s *Server) handlePriorityItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.PriorityItems()
	if err != nil {
		slog.Error("Error listing priority items", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleStats returns the dashboard summary
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats()
	if err != nil {
		slog.Error("Error computing stats", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// expiryDateRequest is the payload for the date recognition endpoint.
type expiryDateRequest struct {
	ImageBase64  string `json:"image_base64"`
	MaxPastYears int    `json:"maxPastYears"`
}

// handleReadExpiryDate runs OCR on an uploaded photo and extracts the most
// plausible expiry date from the recognized text
func (s *Server) handleReadExpiryDate(w http.ResponseWriter, r *http.Request) {
	var req expiryDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}

	// Mobile clients send data URLs; keep only the payload.
	encoded := req.ImageBase64
	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	imageData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_base64 is not valid base64")
		return
	}

	engine, err := expiry.New(expiry.Config{MaxPastYears: req.MaxPastYears})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	contentType := http.DetectContentType(imageData)
	lines, err := s.reader.ReadText(imageData, contentType)
	if err != nil {
		slog.Error("Error reading text from image", "content_type", contentType, "image_size", len(imageData), "error", err)
		writeError(w, http.StatusInternalServerError, "Could not read text from the image")
		return
	}

	result := engine.Extract(lines)
	writeJSON(w, http.StatusOK, result)
}

// productResponse wraps a catalog lookup with the shelf-life suggestion.
type productResponse struct {
	Found     bool               `json:"found"`
	Product   *catalog.Product   `json:"product,omitempty"`
	ShelfLife *catalog.ShelfLife `json:"shelf_life,omitempty"`
}

// handleLookupProduct resolves a barcode against OpenFoodFacts
func (s *Server) handleLookupProduct(w http.ResponseWriter, r *http.Request) {
	barcode := r.PathValue("barcode")

	product, err := s.products.Lookup(r.Context(), barcode)
	if err != nil {
		slog.Error("Error looking up product", "barcode", barcode, "error", err)
		corsError(w, "Product lookup failed", http.StatusBadGateway)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusOK, productResponse{Found: false})
		return
	}

	shelfLife := catalog.InferShelfLife(product)
	writeJSON(w, http.StatusOK, productResponse{
		Found:     true,
		Product:   product,
		ShelfLife: &shelfLife,
	})
}
