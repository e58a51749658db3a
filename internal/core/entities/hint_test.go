package entities

import "testing"

func TestHintSubject_ResolvedID(t *testing.T) {
	fileSubj := FileSubject("bad.desktop")
	if got := fileSubj.ResolvedID(); got != "bad.desktop" {
		t.Errorf("file subject ResolvedID() = %q, want %q", got, "bad.desktop")
	}

	comp := NewComponent("foobar.desktop")
	compSubj := ComponentSubject(comp)
	if got := compSubj.ResolvedID(); got != "foobar.desktop" {
		t.Errorf("component subject ResolvedID() = %q, want %q", got, "foobar.desktop")
	}
}

func TestNewHint_NilVariablesBecomeEmptyMap(t *testing.T) {
	h := NewHint(FileSubject("bad.desktop"), "desktop-file-error", nil)
	if h.Variables == nil {
		t.Fatal("expected non-nil Variables map")
	}
	if len(h.Variables) != 0 {
		t.Errorf("expected empty Variables map, got %+v", h.Variables)
	}
}

func TestNewHint_PreservesGivenVariables(t *testing.T) {
	vars := map[string]string{"category_name": "NotReal"}
	h := NewHint(FileSubject("bad.desktop"), "category-name-invalid", vars)
	if h.Variables["category_name"] != "NotReal" {
		t.Errorf("Variables not preserved: %+v", h.Variables)
	}
}
