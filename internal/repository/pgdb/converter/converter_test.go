package converter

import (
	"reflect"
	"testing"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/shopspring/decimal"
)

func TestProductConverter_OptionalColumns(t *testing.T) {
	conv := ProductConverterImpl{}

	model := conv.ToModel(&domain.Product{ID: "p", Title: "Coffee"})
	if model.CategoryID != nil {
		t.Fatalf("empty category must be stored as NULL")
	}
	if model.Flavors == nil || model.Images == nil || model.Properties == nil {
		t.Fatalf("collections must not be NULL: %+v", model)
	}

	cat := "c1"
	model.CategoryID = &cat
	model.WeightAndPrices = []WeightPriceModel{{Weight: "1kg", PriceUnit: decimal.NewFromInt(3)}}
	entity := conv.ToEntity(model)
	if entity.CategoryID != "c1" || entity.WeightAndPrices[0].Weight != "1kg" {
		t.Fatalf("unexpected entity %+v", entity)
	}
}

func TestCategoryConverter_Parent(t *testing.T) {
	parent := "root"
	got := CategoryConverterImpl{}.ToEntity(&CategoryModel{
		ID:         "child",
		Name:       "Coffee",
		ParentID:   &parent,
		Properties: []PropertyModel{{Name: "roast", Values: []string{"dark"}}},
	})

	want := []domain.Property{{Name: "roast", Values: []string{"dark"}}}
	if got.ParentID != "root" || !reflect.DeepEqual(got.Properties, want) {
		t.Fatalf("unexpected category %+v", got)
	}
}

func TestOutboxEventConverter(t *testing.T) {
	conv := OutboxEventConverterImpl{}
	ev := usecase.NewOutboxEvent("e1", usecase.ProductCreated, "p1", []byte("x"))

	back := conv.ToArrEntity([]*OutboxEventModel{conv.ToModel(ev)})
	if len(back) != 1 || back[0].Status != usecase.Pending || back[0].EventType != usecase.ProductCreated {
		t.Fatalf("unexpected events %+v", back)
	}
}
