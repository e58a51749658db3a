package entities

import "testing"

func TestValidateLocale(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"untranslated", "C", true},
		{"simple language", "de", true},
		{"language and region", "de_DE", true},
		{"language region modifier", "sr_RS@latin", true},
		{"empty", "", false},
		{"digits", "de99", false},
		{"double region", "de_DE_DE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateLocale(tt.input); got != tt.want {
				t.Errorf("ValidateLocale(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid absolute", "/var/cache/asgen/foo.deb", false},
		{"valid relative", "pool/main/f/foo/foo.deb", false},
		{"empty", "", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "pool/../../etc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsBlacklistedCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"GTK", "GTK", true},
		{"vendor extension", "X-Foo", true},
		{"lowercase vendor extension", "x-foo", true},
		{"ordinary category", "Network", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlacklistedCategory(tt.input); got != tt.want {
				t.Errorf("IsBlacklistedCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCanonicalCategory(t *testing.T) {
	if !IsCanonicalCategory("Network") {
		t.Error("Network should be a canonical category")
	}
	if IsCanonicalCategory("NotARealCategory") {
		t.Error("NotARealCategory should not be canonical")
	}
}
