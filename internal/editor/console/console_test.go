package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/editor"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/shopspring/decimal"
)

type fakeAPI struct {
	mu       sync.Mutex
	uploaded []editor.File
	created  []*domain.Product
	updated  []*domain.Product
}

func (f *fakeAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	return []domain.Category{{
		ID:         "coffee",
		Name:       "Coffee",
		Properties: []domain.Property{{Name: "roast", Values: []string{"light", "dark"}}},
	}}, nil
}

func (f *fakeAPI) UploadImages(ctx context.Context, files []editor.File) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, files...)
	links := make([]string, len(files))
	for i, file := range files {
		links[i] = "http://s3/" + file.Name
	}
	return links, nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	return nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, p)
	return nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestRun_CreatesProductFromScript(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	c := New(api, nil, &out, logger.Nop{})
	c.readFile = func(name string) ([]byte, error) { return pngHeader, nil }

	script := strings.Join([]string{
		"title Coffee",
		"price 12.50",
		"pricecol 50000",
		"flavors vanilla, caramel",
		"category coffee",
		"property roast dark",
		"tier add",
		"tier set 0 weight 500g",
		"tier set 0 priceUnit 7.25",
		"upload /tmp/a.png",
		"submit",
		"title never applied",
	}, "\n")

	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.created) != 1 || len(api.updated) != 0 {
		t.Fatalf("expected one create, got created=%d updated=%d", len(api.created), len(api.updated))
	}
	p := api.created[0]
	if p.Title != "Coffee" || !p.Price.Equal(decimal.RequireFromString("12.5")) || p.CategoryID != "coffee" {
		t.Fatalf("unexpected payload %+v", p)
	}
	if len(p.Images) != 1 || p.Images[0] != "http://s3/a.png" {
		t.Fatalf("unexpected images %v", p.Images)
	}
	if api.uploaded[0].ContentType != "image/png" {
		t.Fatalf("content type must be sniffed, got %q", api.uploaded[0].ContentType)
	}
	if p.Properties["roast"] != "dark" {
		t.Fatalf("property not sent: %v", p.Properties)
	}
	if !c.Saved() || !strings.Contains(out.String(), "saved, back to "+editor.ProductsPath) {
		t.Fatalf("expected navigation after save, output:\n%s", out.String())
	}
}

func TestRun_ExistingProductIsUpdated(t *testing.T) {
	api := &fakeAPI{}
	existing := &domain.Product{
		ID:              "p1",
		Title:           "Tea",
		Price:           decimal.NewFromInt(3),
		PriceCOL:        decimal.NewFromInt(12000),
		WeightAndPrices: []domain.WeightPrice{{Weight: "100g", PriceUnit: decimal.NewFromInt(3)}},
	}
	c := New(api, existing, &bytes.Buffer{}, logger.Nop{})

	if err := c.Run(context.Background(), strings.NewReader("title Green tea\nsubmit\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.updated) != 1 || api.updated[0].ID != "p1" || api.updated[0].Title != "Green tea" {
		t.Fatalf("expected update of p1, got %+v", api.updated)
	}
}

func TestRun_ValidationErrorsArePrintedAndFormStays(t *testing.T) {
	api := &fakeAPI{}
	var out bytes.Buffer
	c := New(api, nil, &out, logger.Nop{})

	if err := c.Run(context.Background(), strings.NewReader("price 1.001\nsubmit\nquit\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.created) != 0 || c.Saved() {
		t.Fatalf("invalid form must not be saved")
	}
	for _, want := range []string{"! title:", "! price:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestExec_Commands(t *testing.T) {
	c := New(&fakeAPI{}, nil, &bytes.Buffer{}, logger.Nop{})
	ctx := context.Background()

	for _, line := range []string{"tier add", "tier add", "tier set 1 weight 1kg", "tier rm 0", "images b a", "image rm 0"} {
		if _, err := c.Exec(ctx, line); err != nil {
			t.Fatalf("%q: unexpected error: %v", line, err)
		}
	}
	s := c.form.Snapshot()
	if len(s.Tiers) != 1 || s.Tiers[0].Weight != "1kg" {
		t.Fatalf("unexpected tiers %+v", s.Tiers)
	}
	if len(s.Images) != 1 || s.Images[0] != "a" {
		t.Fatalf("unexpected images %v", s.Images)
	}

	if _, err := c.Exec(ctx, "tier rm 5"); err == nil {
		t.Fatalf("expected error for missing tier")
	}
	if _, err := c.Exec(ctx, "frobnicate"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if quit, _ := c.Exec(ctx, "quit"); !quit {
		t.Fatalf("quit must stop the console")
	}
}

func TestUpload_ReadErrorKeepsImages(t *testing.T) {
	api := &fakeAPI{}
	c := New(api, nil, &bytes.Buffer{}, logger.Nop{})
	readErr := errors.New("no such file")
	c.readFile = func(name string) ([]byte, error) { return nil, readErr }

	if _, err := c.Exec(context.Background(), "upload missing.png"); !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if len(api.uploaded) != 0 || len(c.form.Snapshot().Images) != 0 {
		t.Fatalf("nothing must be uploaded")
	}
}
