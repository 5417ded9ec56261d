package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.net"

// Client queries the OpenFoodFacts v2 API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a Client for the public OpenFoodFacts API. The user agent
// is required by their terms of use.
func NewClient(userAgent string) *Client {
	return NewClientWithBaseURL(defaultBaseURL, userAgent)
}

// NewClientWithBaseURL creates a Client against a custom endpoint, used by
// tests.
func NewClientWithBaseURL(baseURL, userAgent string) *Client {
	if userAgent == "" {
		userAgent = "KeepEat/1.0 (https://keepeat.app)"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// offResponse mirrors the subset of the OpenFoodFacts product payload the
// backend cares about.
type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName       string   `json:"product_name"`
		ProductNameFR     string   `json:"product_name_fr"`
		Brands            string   `json:"brands"`
		ImageFrontSmall   string   `json:"image_front_small_url"`
		ImageURL          string   `json:"image_url"`
		CategoriesTags    []string `json:"categories_tags"`
		Quantity          string   `json:"quantity"`
	} `json:"product"`
}

// Lookup fetches a product by barcode. A product unknown to OpenFoodFacts
// returns (nil, nil); only transport-level problems are errors.
func (c *Client) Lookup(ctx context.Context, barcode string) (*Product, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s", c.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openfoodfacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("OpenFoodFacts lookup failed", "status", resp.StatusCode, "barcode", barcode)
		return nil, nil
	}

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if body.Status != 1 {
		return nil, nil
	}

	p := body.Product
	name := p.ProductName
	if name == "" {
		name = p.ProductNameFR
	}
	if name == "" {
		name = "Produit inconnu"
	}
	imageURL := p.ImageFrontSmall
	if imageURL == "" {
		imageURL = p.ImageURL
	}
	category := ""
	if len(p.CategoriesTags) > 0 {
		category = p.CategoriesTags[0]
	}

	return &Product{
		Barcode:  barcode,
		Name:     name,
		Brand:    p.Brands,
		ImageURL: imageURL,
		Category: category,
		Quantity: p.Quantity,
	}, nil
}
