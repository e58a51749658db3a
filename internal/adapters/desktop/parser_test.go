package desktop

import (
	"testing"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/adapters/locale"
)

func newTestParser() *Parser {
	return NewParser(locale.NewDecoder())
}

func newResult() *entities.GeneratorResult {
	return entities.NewGeneratorResult(&entities.Package{Name: "foo", Version: "1.0"})
}

func TestParse_BasicNameAndComment(t *testing.T) {
	p := newTestParser()
	result := newResult()

	contents := []byte("[Desktop Entry]\nType=Application\nName=Foo\nName[de_DE]=Füü\nComment=A test app\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	comp := result.GetComponent("foo.desktop")
	if comp == nil {
		t.Fatal("expected a component")
	}
	if comp.Name["C"] != "Foo" {
		t.Errorf("Name[C] = %q, want Foo", comp.Name["C"])
	}
	if comp.Name["de_DE"] != "Füü" {
		t.Errorf("Name[de_DE] = %q, want Füü", comp.Name["de_DE"])
	}
	if comp.Summary["C"] != "A test app" {
		t.Errorf("Summary[C] = %q", comp.Summary["C"])
	}
}

func TestParse_SkipsWrongType(t *testing.T) {
	p := newTestParser()
	result := newResult()

	contents := []byte("[Desktop Entry]\nType=Link\nName=Foo\n")
	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.GetComponent("foo.desktop") != nil {
		t.Error("expected component to be skipped for non-application Type")
	}
}

func TestParse_SkipsNoDisplayUnlessOverridden(t *testing.T) {
	p := newTestParser()
	contents := []byte("[Desktop Entry]\nType=Application\nNoDisplay=true\nName=Foo\n")

	result := newResult()
	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.GetComponent("foo.desktop") != nil {
		t.Error("expected NoDisplay component to be skipped by default")
	}

	result2 := newResult()
	if err := p.Parse(result2, "foo.desktop", contents, true, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result2.GetComponent("foo.desktop") == nil {
		t.Error("expected NoDisplay component to be kept when ignoreNoDisplay=true")
	}
}

func TestParse_SkipsAppStreamIgnore(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("[Desktop Entry]\nType=Application\nX-AppStream-Ignore=true\nName=Foo\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.GetComponent("foo.desktop") != nil {
		t.Error("expected component to be skipped for X-AppStream-Ignore")
	}
}

func TestParse_NoGroupEmitsHint(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("not a keyfile at all\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	hints := result.Hints()
	if len(hints) != 1 || hints[0].Tag != "desktop-file-error" {
		t.Fatalf("hints = %+v, want one desktop-file-error", hints)
	}
}

func TestDeriveComponentID_ReverseDNSRewrite(t *testing.T) {
	id := deriveComponentID("org.example.Foo.desktop", entities.ReverseDNSFormatVersion)
	if id != "org.example.Foo" {
		t.Errorf("id = %q, want org.example.Foo", id)
	}
}

func TestDeriveComponentID_BelowThresholdKeepsFullBasename(t *testing.T) {
	id := deriveComponentID("org.example.Foo.desktop", entities.ReverseDNSFormatVersion-1)
	if id != "org.example.Foo.desktop" {
		t.Errorf("id = %q, want unchanged basename", id)
	}
}

func TestDeriveComponentID_UnrecognizedTokenKeepsFullBasename(t *testing.T) {
	id := deriveComponentID("foo.desktop", entities.ReverseDNSFormatVersion)
	if id != "foo.desktop" {
		t.Errorf("id = %q, want unchanged basename", id)
	}
}

func TestParse_CategoriesFilteredAndValidated(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("[Desktop Entry]\nType=Application\nName=Foo\nCategories=GTK;Network;NotReal;X-Custom;\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	comp := result.GetComponent("foo.desktop")
	cats := comp.CategoryList()
	if len(cats) != 1 || cats[0] != "Network" {
		t.Errorf("categories = %v, want [Network]", cats)
	}

	var foundInvalidHint bool
	for _, h := range result.Hints() {
		if h.Tag == "category-name-invalid" && h.Variables["category"] == "NotReal" {
			foundInvalidHint = true
		}
	}
	if !foundInvalidHint {
		t.Error("expected category-name-invalid hint for NotReal")
	}
}

func TestParse_KeywordsMimeTypeAndIcon(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("[Desktop Entry]\nType=Application\nName=Foo\nKeywords=alpha;beta;\nMimeType=text/plain;application/json;\nIcon=foo-icon\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	comp := result.GetComponent("foo.desktop")

	if kw := comp.Keywords["C"]; len(kw) != 2 || kw[0] != "alpha" || kw[1] != "beta" {
		t.Errorf("keywords = %v", kw)
	}
	if mt := comp.Provides["mimetype"]; len(mt) != 2 {
		t.Errorf("mimetype provides = %v", mt)
	}
	if len(comp.Icons) != 1 || comp.Icons[0].Name != "foo-icon" || comp.Icons[0].Width != 1 {
		t.Errorf("icons = %+v", comp.Icons)
	}
}

func TestParse_QuotedValueRetainedAndHinted(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("[Desktop Entry]\nType=Application\nName=\"Quoted Foo\"\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	comp := result.GetComponent("foo.desktop")
	if comp.Name["C"] != "\"Quoted Foo\"" {
		t.Errorf("Name[C] = %q, want quotes retained verbatim", comp.Name["C"])
	}

	var found bool
	for _, h := range result.Hints() {
		if h.Tag == "metainfo-quoted-value" {
			found = true
		}
	}
	if !found {
		t.Error("expected metainfo-quoted-value hint")
	}
}

func TestParse_ControlCharactersSanitized(t *testing.T) {
	p := newTestParser()
	result := newResult()
	contents := []byte("[Desktop Entry]\nType=Application\nName=Foo\x08Bar\n")

	if err := p.Parse(result, "foo.desktop", contents, false, entities.ReverseDNSFormatVersion); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	comp := result.GetComponent("foo.desktop")
	if comp.Name["C"] != "Foo#?#Bar" {
		t.Errorf("Name[C] = %q, want control char replaced", comp.Name["C"])
	}
}
