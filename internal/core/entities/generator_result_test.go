package entities

import "testing"

func TestGeneratorResult_ComponentLifecycle(t *testing.T) {
	pkg := NewPackage("foo", "1.0", "amd64", "pool/f/foo.deb", "Jane")
	result := NewGeneratorResult(pkg)

	if result.GetComponent("foobar.desktop") != nil {
		t.Fatal("expected no component before it is added")
	}

	comp := NewComponent("foobar.desktop")
	comp.SetName(LocaleC, "FooBar", true)
	result.AddComponent(comp)

	got := result.GetComponent("foobar.desktop")
	if got == nil || got.Name[LocaleC] != "FooBar" {
		t.Fatalf("GetComponent returned %+v", got)
	}

	if len(result.Components()) != 1 {
		t.Errorf("expected 1 component, got %d", len(result.Components()))
	}
}

func TestGeneratorResult_Hints(t *testing.T) {
	pkg := NewPackage("foo", "1.0", "amd64", "pool/f/foo.deb", "Jane")
	result := NewGeneratorResult(pkg)

	result.AddHint(FileSubject("bad.desktop"), "desktop-file-error", nil)
	comp := NewComponent("foobar.desktop")
	result.AddComponent(comp)
	result.AddHint(ComponentSubject(comp), "category-name-invalid", map[string]string{"category_name": "NotReal"})

	hints := result.Hints()
	if len(hints) != 2 {
		t.Fatalf("expected 2 hints, got %d", len(hints))
	}
	if hints[0].Subject.ResolvedID() != "bad.desktop" {
		t.Errorf("first hint subject resolved = %q", hints[0].Subject.ResolvedID())
	}
	if hints[1].Subject.ResolvedID() != "foobar.desktop" {
		t.Errorf("second hint subject resolved = %q", hints[1].Subject.ResolvedID())
	}
}
