package stock

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fesperiquette82/keepeat/internal/catalog"
	"github.com/fesperiquette82/keepeat/internal/ocr"
)

// ProductLookup resolves a barcode to product metadata.
type ProductLookup interface {
	Lookup(ctx context.Context, barcode string) (*catalog.Product, error)
}

// Server handles HTTP requests for the pantry API
type Server struct {
	service   *Service
	reader    ocr.Engine
	products  ProductLookup
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, reader ocr.Engine, products ProductLookup, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, reader, products, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, reader ocr.Engine, products ProductLookup, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		reader:    reader,
		products:  products,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			// Ensure CORS headers are set before error response
			setCORSHeaders(w)
			w.Header().Set("WWW-Authenticate", `Basic realm="KeepEat"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux
// Routes must be registered from most specific to least specific to avoid conflicts
func (s *Server) registerRoutes() {
	// Stock endpoints (most specific paths first)
	s.mux.HandleFunc("GET /api/stock/priority", s.requireAuth(s.handlePriorityItems))
	s.mux.HandleFunc("POST /api/stock/{id}/consume", s.requireAuth(s.handleConsumeItem))
	s.mux.HandleFunc("POST /api/stock/{id}/throw", s.requireAuth(s.handleThrowItem))
	s.mux.HandleFunc("GET /api/stock/{id}", s.requireAuth(s.handleGetItem))
	s.mux.HandleFunc("PUT /api/stock/{id}", s.requireAuth(s.handleUpdateItem))
	s.mux.HandleFunc("GET /api/stock", s.requireAuth(s.handleListItems))
	s.mux.HandleFunc("POST /api/stock", s.requireAuth(s.handleAddItem))

	// Recognition and catalog endpoints
	s.mux.HandleFunc("POST /api/ocr/date", s.requireAuth(s.handleReadExpiryDate))
	s.mux.HandleFunc("GET /api/product/{barcode}", s.requireAuth(s.handleLookupProduct))

	// Stats and health
	s.mux.HandleFunc("GET /api/stats", s.requireAuth(s.handleStats))
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	// Wrap the mux with CORS middleware to handle all requests including OPTIONS
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
