package editor

import (
	"reflect"
	"testing"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/shopspring/decimal"
)

func TestNew_BlankForm(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)

	s := f.Snapshot()
	if s.ID != "" || s.Title != "" || s.Price != "" || s.PriceCOL != "" || s.Flavors != "" {
		t.Fatalf("expected blank form, got %+v", s)
	}
	if len(s.Images) != 0 || len(s.Tiers) != 0 || len(s.Properties) != 0 {
		t.Fatalf("expected empty collections, got %+v", s)
	}
}

func TestNew_HydratesExistingProduct(t *testing.T) {
	existing := &domain.Product{
		ID:          "abc123",
		Title:       "Coffee",
		Description: "Beans",
		Price:       decimal.RequireFromString("12.5"),
		PriceCOL:    decimal.RequireFromString("50000"),
		WeightAndPrices: []domain.WeightPrice{
			{Weight: "500g", PriceUnit: decimal.RequireFromString("7.25")},
		},
		Flavors:    []string{"vanilla", "caramel"},
		Images:     []string{"http://img/1.jpg"},
		CategoryID: "cat1",
		Properties: map[string]string{"roast": "dark"},
	}

	f, _ := newTestForm(&fakeAPI{}, existing)
	s := f.Snapshot()

	if s.ID != "abc123" || s.Title != "Coffee" || s.Description != "Beans" {
		t.Fatalf("unexpected identity fields: %+v", s)
	}
	if s.Price != "12.5" || s.PriceCOL != "50000" {
		t.Fatalf("unexpected prices %q %q", s.Price, s.PriceCOL)
	}
	if s.Flavors != "vanilla, caramel" {
		t.Fatalf("unexpected flavors %q", s.Flavors)
	}
	if !reflect.DeepEqual(s.Tiers, []Tier{{Weight: "500g", PriceUnit: "7.25"}}) {
		t.Fatalf("unexpected tiers %+v", s.Tiers)
	}
	if s.Category != "cat1" || s.Properties["roast"] != "dark" {
		t.Fatalf("unexpected category/properties %+v", s)
	}

	existing.Images[0] = "mutated"
	if f.Snapshot().Images[0] != "http://img/1.jpg" {
		t.Fatalf("form shares image slice with the input product")
	}
}

func TestSetters_RenderOnEveryChange(t *testing.T) {
	f, rec := newTestForm(&fakeAPI{}, nil)

	f.SetTitle("Tea")
	f.SetDescription("Green")
	f.SetPrice("3")
	f.SetPriceCOL("12000")
	f.SetFlavors("mint")
	f.SetCategory("c")
	f.SetProperty("size", "L")

	if rec.renders() != 7 {
		t.Fatalf("expected 7 renders, got %d", rec.renders())
	}

	last := rec.snaps[len(rec.snaps)-1]
	if last.Title != "Tea" || last.Description != "Green" || last.Price != "3" ||
		last.PriceCOL != "12000" || last.Flavors != "mint" || last.Category != "c" ||
		last.Properties["size"] != "L" {
		t.Fatalf("unexpected final snapshot %+v", last)
	}
}

func TestSnapshot_IsIsolatedFromForm(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)
	f.SetProperty("color", "red")

	s := f.Snapshot()
	s.Properties["color"] = "blue"

	if f.Snapshot().Properties["color"] != "red" {
		t.Fatalf("snapshot mutation leaked into form state")
	}
}
