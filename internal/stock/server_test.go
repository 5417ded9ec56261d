package stock

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/fesperiquette82/keepeat/internal/catalog"
	"github.com/fesperiquette82/keepeat/internal/expiry"
)

// mockReader is a mock implementation of ocr.Engine
type mockReader struct {
	lines []expiry.Line
	err   error
}

func (m *mockReader) ReadText(imageData []byte, contentType string) ([]expiry.Line, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lines, nil
}

func (m *mockReader) Close() error {
	return nil
}

// mockLookup is a mock implementation of ProductLookup
type mockLookup struct {
	product *catalog.Product
	err     error
}

func (m *mockLookup) Lookup(ctx context.Context, barcode string) (*catalog.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

var _ = Describe("Server", func() {
	var (
		db          *mockDB
		service     *Service
		reader      *mockReader
		lookup      *mockLookup
		auth        BasicAuth
		server      *Server
		ghttpServer *ghttp.Server
	)

	setupServer := func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
		server = NewServerWithMux(service, reader, lookup, auth, http.NewServeMux())
		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	}

	BeforeEach(func() {
		db = newMockDB()
		service = NewServiceWithDeps(db,
			&mockIDGenerator{ids: []string{"id-1", "id-2"}},
			&mockTimeSource{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		)
		reader = &mockReader{}
		lookup = &mockLookup{}
		auth = BasicAuth{}
		setupServer()
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	postJSON := func(path string, body any) *http.Response {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		resp, err := http.Post(ghttpServer.URL()+path, "application/json", bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	decodeBody := func(resp *http.Response, into any) {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(data, into)).NotTo(HaveOccurred())
	}

	Describe("handleHealth", func() {
		It("answers without authentication", func() {
			auth = BasicAuth{Username: "user", Password: "pass"}
			setupServer()

			resp, err := http.Get(ghttpServer.URL() + "/api/health")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()
		})
	})

	Describe("authentication", func() {
		BeforeEach(func() {
			auth = BasicAuth{Username: "user", Password: "pass"}
			setupServer()
		})

		It("rejects requests without credentials", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/stock")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			resp.Body.Close()
		})

		It("accepts requests with the right credentials", func() {
			req, err := http.NewRequest("GET", ghttpServer.URL()+"/api/stock", nil)
			Expect(err).NotTo(HaveOccurred())
			req.SetBasicAuth("user", "pass")
			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			resp.Body.Close()
		})
	})

	Describe("handleAddItem", func() {
		It("creates an item and returns 201", func() {
			resp := postJSON("/api/stock", ItemInput{Name: "Camembert", ExpiryDate: "2025-06-10"})
			Expect(resp.StatusCode).To(Equal(http.StatusCreated))

			var item Item
			decodeBody(resp, &item)
			Expect(item.ID).To(Equal("id-1"))
			Expect(item.Status).To(Equal(StatusActive))
		})

		It("returns 400 on a validation error", func() {
			resp := postJSON("/api/stock", ItemInput{})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})

		It("returns 400 on a malformed body", func() {
			resp, err := http.Post(ghttpServer.URL()+"/api/stock", "application/json", bytes.NewReader([]byte("{")))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})
	})

	Describe("handleListItems", func() {
		BeforeEach(func() {
			db.items["a"] = &Item{ID: "a", Name: "Lait", Status: StatusActive}
			db.items["b"] = &Item{ID: "b", Name: "Yaourt", Status: StatusConsumed}
		})

		It("returns all items by default", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/stock")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var items []*Item
			decodeBody(resp, &items)
			Expect(items).To(HaveLen(2))
		})

		It("filters by status", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/stock?status=active")
			Expect(err).NotTo(HaveOccurred())

			var items []*Item
			decodeBody(resp, &items)
			Expect(items).To(HaveLen(1))
			Expect(items[0].ID).To(Equal("a"))
		})

		It("rejects an unknown status filter", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/stock?status=eaten")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})
	})

	Describe("handleConsumeItem", func() {
		BeforeEach(func() {
			db.items["a"] = &Item{ID: "a", Name: "Lait", Status: StatusActive}
		})

		It("consumes the item", func() {
			resp := postJSON("/api/stock/a/consume", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var item Item
			decodeBody(resp, &item)
			Expect(item.Status).To(Equal(StatusConsumed))
		})

		It("returns 400 for an unknown item", func() {
			resp := postJSON("/api/stock/nope/consume", nil)
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})
	})

	Describe("handleReadExpiryDate", func() {
		image := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
		// The engine checks plausibility against the wall clock, so the
		// fixture date has to stay in the near future.
		future := time.Now().AddDate(0, 6, 0)

		When("the photo carries a date with a keyword", func() {
			BeforeEach(func() {
				reader.lines = []expiry.Line{
					{Text: "A consommer avant le " + future.Format("02/01/2006"), Confidence: 0.9},
				}
			})

			It("returns the extracted date", func() {
				resp := postJSON("/api/ocr/date", map[string]any{"image_base64": image})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var result expiry.Result
				decodeBody(resp, &result)
				Expect(result.Date).To(Equal(future.Format("2006-01-02")))
				Expect(result.Confidence).To(BeNumerically("~", 1.0, 0.001))
			})
		})

		When("the photo carries no date", func() {
			BeforeEach(func() {
				reader.lines = []expiry.Line{{Text: "INGREDIENTS: SUCRE, CACAO", Confidence: 0.8}}
			})

			It("returns an empty result, not an error", func() {
				resp := postJSON("/api/ocr/date", map[string]any{"image_base64": image})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var result expiry.Result
				decodeBody(resp, &result)
				Expect(result.Date).To(BeEmpty())
				Expect(result.RawLines).To(HaveLen(1))
			})
		})

		It("accepts a data URL prefix", func() {
			reader.lines = []expiry.Line{{Text: future.Format("01/2006"), Confidence: 0.9}}
			resp := postJSON("/api/ocr/date", map[string]any{
				"image_base64": "data:image/png;base64," + image,
			})
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var result expiry.Result
			decodeBody(resp, &result)
			lastDay := time.Date(future.Year(), future.Month()+1, 0, 0, 0, 0, 0, time.UTC)
			Expect(result.Date).To(Equal(lastDay.Format("2006-01-02")))
		})

		It("returns 400 when the payload is not base64", func() {
			resp := postJSON("/api/ocr/date", map[string]any{"image_base64": "not/base64!!"})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})

		It("returns 400 when the image is missing", func() {
			resp := postJSON("/api/ocr/date", map[string]any{})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})

		It("returns 400 when maxPastYears is out of range", func() {
			resp := postJSON("/api/ocr/date", map[string]any{
				"image_base64": image,
				"maxPastYears": 99,
			})
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			resp.Body.Close()
		})

		It("returns 500 when text recognition fails", func() {
			reader.err = errors.New("model unavailable")
			resp := postJSON("/api/ocr/date", map[string]any{"image_base64": image})
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
			resp.Body.Close()
		})
	})

	Describe("handleLookupProduct", func() {
		When("the product is known", func() {
			BeforeEach(func() {
				lookup.product = &catalog.Product{Barcode: "3017620422003", Name: "Nutella"}
			})

			It("returns the product with a shelf-life suggestion", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/product/3017620422003")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var body productResponse
				decodeBody(resp, &body)
				Expect(body.Found).To(BeTrue())
				Expect(body.Product.Name).To(Equal("Nutella"))
				Expect(body.ShelfLife).NotTo(BeNil())
			})
		})

		When("the product is unknown", func() {
			It("returns found false", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/product/0000000000000")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var body productResponse
				decodeBody(resp, &body)
				Expect(body.Found).To(BeFalse())
				Expect(body.Product).To(BeNil())
			})
		})

		When("the upstream API fails", func() {
			BeforeEach(func() {
				lookup.err = errors.New("timeout")
			})

			It("returns 502", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/product/3017620422003")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))
				resp.Body.Close()
			})
		})
	})

	Describe("handleStats", func() {
		BeforeEach(func() {
			db.items["a"] = &Item{ID: "a", Status: StatusActive, ExpiryDate: "2025-06-02"}
		})

		It("returns the dashboard summary", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/stats")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var stats Stats
			decodeBody(resp, &stats)
			Expect(stats.TotalItems).To(Equal(1))
			Expect(stats.ExpiringSoon).To(Equal(1))
		})
	})
})
