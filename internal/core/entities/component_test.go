package entities

import "testing"

func TestNewComponent(t *testing.T) {
	comp := NewComponent("foobar.desktop")

	if comp.ID != "foobar.desktop" {
		t.Errorf("ID = %q, want %q", comp.ID, "foobar.desktop")
	}
	if comp.Kind != KindDesktopApp {
		t.Errorf("Kind = %q, want %q", comp.Kind, KindDesktopApp)
	}
	if len(comp.Name) != 0 || len(comp.Categories) != 0 {
		t.Error("new component should start with empty maps")
	}
}

func TestComponent_SetName_ExplicitWinsOverHook(t *testing.T) {
	comp := NewComponent("foobar.desktop")

	comp.SetName(LocaleC, "hook value", false)
	if comp.Name[LocaleC] != "hook value" {
		t.Fatalf("hook value should fill an empty slot, got %q", comp.Name[LocaleC])
	}

	comp.SetName(LocaleC, "explicit value", true)
	if comp.Name[LocaleC] != "explicit value" {
		t.Errorf("explicit value should overwrite, got %q", comp.Name[LocaleC])
	}

	// A later hook-supplied value must not clobber the explicit one.
	comp.SetName(LocaleC, "late hook value", false)
	if comp.Name[LocaleC] != "explicit value" {
		t.Errorf("hook value should not overwrite explicit value, got %q", comp.Name[LocaleC])
	}
}

func TestComponent_SetSummary_MergeRule(t *testing.T) {
	comp := NewComponent("foobar.desktop")

	comp.SetSummary("de_DE", "hook summary", false)
	comp.SetSummary("de_DE", "explicit summary", true)

	if comp.Summary["de_DE"] != "explicit summary" {
		t.Errorf("Summary[de_DE] = %q, want explicit summary", comp.Summary["de_DE"])
	}
}

func TestComponent_Categories(t *testing.T) {
	comp := NewComponent("foobar.desktop")

	comp.AddCategory("Network")
	comp.AddCategory("Utility")
	comp.AddCategory("Network") // duplicate

	cats := comp.CategoryList()
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d: %v", len(cats), cats)
	}
	if cats[0] != "Network" || cats[1] != "Utility" {
		t.Errorf("CategoryList() = %v, want sorted [Network Utility]", cats)
	}
}

func TestComponent_ProvidesAndIcons(t *testing.T) {
	comp := NewComponent("foobar.desktop")

	comp.AddProvides("mimetype", []string{"text/plain", "text/markdown"})
	if len(comp.Provides["mimetype"]) != 2 {
		t.Errorf("expected 2 mimetypes, got %d", len(comp.Provides["mimetype"]))
	}

	comp.AddIcon(Icon{Kind: "cached", Width: 1, Height: 1, Name: "foobar"})
	if len(comp.Icons) != 1 || comp.Icons[0].Name != "foobar" {
		t.Errorf("unexpected icons: %+v", comp.Icons)
	}
}
