package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/editor"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 3,
		RetryBase:  time.Millisecond,
		RetryMax:   5 * time.Millisecond,
	}, nil)
}

func TestCategories_DecodesParent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/categories" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[
			{"_id":"root","name":"Food","properties":[{"name":"origin","values":["CO"]}],"parent":null},
			{"_id":"coffee","name":"Coffee","properties":[],"parent":{"_id":"root","name":"Food"}}
		]`)
	})

	cats, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 || cats[0].ParentID != "" || cats[1].ParentID != "root" {
		t.Fatalf("unexpected categories %+v", cats)
	}
	if cats[0].Properties[0].Values[0] != "CO" {
		t.Fatalf("properties not decoded: %+v", cats[0].Properties)
	}
}

func TestCategories_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `[]`)
	})

	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestCategories_GivesUpWithNetworkError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Categories(context.Background())
	var netErr *e.NetworkError
	if !errors.As(err, &netErr) || netErr.Status != http.StatusBadGateway {
		t.Fatalf("expected network error with status 502, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestCategories_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL, MaxRetries: 1}, nil)

	_, err := c.Categories(context.Background())
	if !errors.Is(err, e.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestUploadImages_SendsRepeatedFileField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		files := r.MultipartForm.File["file"]
		if len(files) != 2 || files[0].Filename != "a.png" || files[1].Filename != "b.jpg" {
			t.Errorf("unexpected files %+v", files)
		}
		json.NewEncoder(w).Encode(map[string][]string{"links": {"http://s3/a.png", "http://s3/b.jpg"}})
	})

	links, err := c.UploadImages(context.Background(), []editor.File{
		{Name: "a.png", ContentType: "image/png", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 2 || links[0] != "http://s3/a.png" {
		t.Fatalf("unexpected links %v", links)
	}
}

func TestCreateProduct_PostsWithoutID(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.CreateProduct(context.Background(), &domain.Product{
		Title:           "Coffee",
		Price:           decimal.RequireFromString("12.5"),
		PriceCOL:        decimal.NewFromInt(50000),
		WeightAndPrices: []domain.WeightPrice{{Weight: "500g", PriceUnit: decimal.RequireFromString("7.25")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := body["_id"]; ok {
		t.Fatalf("create payload carries _id: %v", body)
	}
	tiers := body["weightAndPrices"].([]any)
	if unit, ok := tiers[0].(map[string]any)["priceUnit"].(float64); !ok || unit != 7.25 {
		t.Fatalf("priceUnit must be a JSON number, got %#v", tiers[0])
	}
}

func TestUpdateProduct_PutsWithID(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("unexpected method %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&body)
	})

	if err := c.UpdateProduct(context.Background(), &domain.Product{ID: "abc123", Title: "Coffee"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["_id"] != "abc123" {
		t.Fatalf("update payload must carry _id, got %v", body)
	}
}

func TestUpdateProduct_NotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.UpdateProduct(context.Background(), &domain.Product{ID: "abc123", Title: "Coffee"})
	if !errors.Is(err, e.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("writes must not be retried, got %d calls", calls.Load())
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		target error
	}{
		{http.StatusBadRequest, `{"code":400,"message":"product title is required","field":"title"}`, e.ErrValidation},
		{http.StatusNotFound, `{"code":404,"message":"product not found"}`, e.ErrNotFound},
		{http.StatusRequestEntityTooLarge, `{"code":413,"message":"file too large","field":"file"}`, e.ErrValidation},
		{http.StatusInternalServerError, `oops`, e.ErrNetwork},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			io.WriteString(w, tc.body)
		})

		err := c.UpdateProduct(context.Background(), &domain.Product{ID: "abc123", Title: "Coffee"})
		if !errors.Is(err, tc.target) {
			t.Errorf("status %d: expected %v, got %v", tc.status, tc.target, err)
		}
	}
}

func TestStatusMapping_ValidationFieldAndNotFoundID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "id=") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":400,"message":"price is required","field":"price"}`)
	})

	err := c.CreateProduct(context.Background(), &domain.Product{Title: "x"})
	var verr *e.ValidationError
	if !errors.As(err, &verr) || verr.Field != "price" {
		t.Fatalf("expected validation error on price, got %v", err)
	}

	_, err = c.Product(context.Background(), "missing")
	var nf *e.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "missing" {
		t.Fatalf("expected not found error for id, got %v", err)
	}
}
