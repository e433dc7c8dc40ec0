package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/pkg/e"
)

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: "food", Name: "Food", Properties: []domain.Property{{Name: "origin", Values: []string{"CO", "PE"}}}},
		{ID: "coffee", Name: "Coffee", ParentID: "food", Properties: []domain.Property{{Name: "roast", Values: []string{"light", "dark"}}}},
	}
}

func TestLoadCategories_ResolvesInheritedProperties(t *testing.T) {
	api := &fakeAPI{categories: testCategories()}
	f, rec := newTestForm(api, nil)

	if err := f.LoadCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.snaps[0].CategoriesLoading {
		t.Fatalf("loading state not shown while fetching")
	}

	f.SetCategory("coffee")
	s := f.Snapshot()
	if s.CategoriesLoading {
		t.Fatalf("loading state not cleared")
	}
	if len(s.PropertiesToFill) != 2 || s.PropertiesToFill[0].Name != "roast" || s.PropertiesToFill[1].Name != "origin" {
		t.Fatalf("unexpected properties %+v", s.PropertiesToFill)
	}

	f.SetCategory("")
	if props, _ := f.PropertiesToFill(); len(props) != 0 {
		t.Fatalf("expected no properties without a category, got %+v", props)
	}
}

func TestLoadCategories_FetchesOnce(t *testing.T) {
	api := &fakeAPI{categories: testCategories()}
	f, _ := newTestForm(api, nil)

	for i := 0; i < 3; i++ {
		if err := f.LoadCategories(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if api.categoryCalls != 1 {
		t.Fatalf("expected a single fetch, got %d", api.categoryCalls)
	}
}

func TestLoadCategories_UnreachableLeavesNoProperties(t *testing.T) {
	api := &fakeAPI{categoriesErr: e.NewNetworkError("categories", 0, errors.New("dial tcp: connection refused"))}
	f, _ := newTestForm(api, nil)
	f.SetCategory("coffee")

	err := f.LoadCategories(context.Background())
	if !errors.Is(err, e.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}

	s := f.Snapshot()
	if s.CategoriesLoading {
		t.Fatalf("loading state stuck after failure")
	}
	if len(s.Categories) != 0 || len(s.PropertiesToFill) != 0 {
		t.Fatalf("expected no categories and no properties, got %+v", s)
	}
	if !errors.Is(s.CategoriesErr, e.ErrNetwork) {
		t.Fatalf("fetch error not surfaced: %v", s.CategoriesErr)
	}

	api.categoriesErr = nil
	api.categories = testCategories()
	if err := f.LoadCategories(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got := len(f.Snapshot().PropertiesToFill); got != 2 {
		t.Fatalf("expected properties after retry, got %d", got)
	}
}

func TestPropertiesToFill_CyclicTreeDoesNotHang(t *testing.T) {
	api := &fakeAPI{categories: []domain.Category{
		{ID: "a", ParentID: "b", Properties: []domain.Property{{Name: "pa"}}},
		{ID: "b", ParentID: "a", Properties: []domain.Property{{Name: "pb"}}},
	}}
	f, _ := newTestForm(api, nil)
	_ = f.LoadCategories(context.Background())
	f.SetCategory("a")

	s := f.Snapshot()
	if !errors.Is(s.PropertiesErr, e.ErrCategoryCycle) {
		t.Fatalf("expected cycle error, got %v", s.PropertiesErr)
	}
	if len(s.PropertiesToFill) != 2 {
		t.Fatalf("expected properties gathered before the cycle, got %+v", s.PropertiesToFill)
	}
}
