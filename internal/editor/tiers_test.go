package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DRSN-tech/product-admin/pkg/e"
)

func TestAddTier_AppendsBlankTier(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)

	for i := 1; i <= 3; i++ {
		f.AddTier()
		tiers := f.Snapshot().Tiers
		if len(tiers) != i {
			t.Fatalf("expected %d tiers, got %d", i, len(tiers))
		}
		if tiers[i-1] != (Tier{}) {
			t.Fatalf("new tier is not blank: %+v", tiers[i-1])
		}
	}
}

func TestUpdateTier_ChangesOneField(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)
	f.AddTier()
	f.AddTier()

	if err := f.UpdateTier(1, TierWeight, "1kg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.UpdateTier(1, TierPriceUnit, "20"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Tier{{}, {Weight: "1kg", PriceUnit: "20"}}
	if got := f.Snapshot().Tiers; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUpdateTier_RejectsBadInput(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)
	f.AddTier()

	if err := f.UpdateTier(5, TierWeight, "x"); !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected validation error for index, got %v", err)
	}
	if err := f.UpdateTier(0, TierField("color"), "x"); !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected validation error for field, got %v", err)
	}
}

func TestRemoveTier_KeepsOrder(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)
	for _, w := range []string{"250g", "500g", "1kg", "2kg"} {
		f.AddTier()
		last := len(f.Snapshot().Tiers) - 1
		if err := f.UpdateTier(last, TierWeight, w); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := f.RemoveTier(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, tier := range f.Snapshot().Tiers {
		got = append(got, tier.Weight)
	}
	if want := []string{"250g", "1kg", "2kg"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if err := f.RemoveTier(3); !errors.Is(err, e.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTiers_DuplicateWeightsAllowed(t *testing.T) {
	f, _ := newTestForm(&fakeAPI{}, nil)
	f.AddTier()
	f.AddTier()
	_ = f.UpdateTier(0, TierWeight, "500g")
	_ = f.UpdateTier(1, TierWeight, "500g")

	tiers := f.Snapshot().Tiers
	if tiers[0].Weight != "500g" || tiers[1].Weight != "500g" {
		t.Fatalf("duplicate weights were not kept: %+v", tiers)
	}
}
