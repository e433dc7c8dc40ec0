package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DRSN-tech/product-admin/pkg/e"
)

func prop(name string, values ...string) Property {
	return Property{Name: name, Values: values}
}

func TestResolveProperties_OwnThenAncestorsNearestFirst(t *testing.T) {
	cats := []Category{
		{ID: "root", Name: "Food", Properties: []Property{prop("origin", "CO", "PE")}},
		{ID: "mid", Name: "Coffee", ParentID: "root", Properties: []Property{prop("roast", "light", "dark")}},
		{ID: "leaf", Name: "Beans", ParentID: "mid", Properties: []Property{prop("grind", "whole", "fine"), prop("size", "S", "L")}},
	}

	got, err := ResolveProperties("leaf", cats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"grind", "size", "roast", "origin"}
	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if !reflect.DeepEqual(got[2].Values, []string{"light", "dark"}) {
		t.Fatalf("values order changed: %v", got[2].Values)
	}
}

func TestResolveProperties_Empty(t *testing.T) {
	cats := []Category{{ID: "a", Properties: []Property{prop("color", "red")}}}

	cases := []struct {
		name string
		id   string
		cats []Category
	}{
		{"no selection", "", cats},
		{"no categories loaded", "a", nil},
		{"unknown category", "zzz", cats},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveProperties(tc.id, tc.cats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected no properties, got %v", got)
			}
		})
	}
}

func TestResolveProperties_MissingParentStopsWalk(t *testing.T) {
	cats := []Category{{ID: "a", ParentID: "gone", Properties: []Property{prop("color", "red")}}}

	got, err := ResolveProperties("a", cats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "color" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestResolveProperties_CycleTerminates(t *testing.T) {
	cats := []Category{
		{ID: "a", ParentID: "b", Properties: []Property{prop("pa")}},
		{ID: "b", ParentID: "a", Properties: []Property{prop("pb")}},
	}

	got, err := ResolveProperties("a", cats)
	if !errors.Is(err, e.ErrCategoryCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if len(got) != 2 || got[0].Name != "pa" || got[1].Name != "pb" {
		t.Fatalf("expected properties gathered before the cycle, got %v", got)
	}
}

func TestResolveProperties_SelfParent(t *testing.T) {
	cats := []Category{{ID: "a", ParentID: "a", Properties: []Property{prop("pa")}}}

	got, err := ResolveProperties("a", cats)
	if !errors.Is(err, e.ErrCategoryCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 property, got %d", len(got))
	}
}
